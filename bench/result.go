// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package bench

import (
	"fmt"
	"io"
	"time"
)

// Result accumulates benchmark statistics for one input.
type Result struct {
	OriginalBytes   uint64
	CompressedBytes uint64

	Chunks           int
	CompressedChunks int

	CompressTime   time.Duration
	DecompressTime time.Duration
}

// Empty reports whether the input had no data.
func (r Result) Empty() bool {
	return r.OriginalBytes == 0
}

// Ratio returns the compressed size as a percentage of the original size.
func (r Result) Ratio() float64 {
	if r.Empty() {
		return 0
	}

	return float64(r.CompressedBytes) * 100 / float64(r.OriginalBytes)
}

// throughput returns MB/s (10^6 bytes per second) for processing the original data in d.
func (r Result) throughput(d time.Duration) uint64 {
	return 1000 * r.OriginalBytes / uint64(max(d, 1))
}

// WriteReport prints the result in the benchmark report layout.
func (r Result) WriteReport(w io.Writer) error {
	if r.Empty() {
		_, err := fmt.Fprintf(w, "\tFile was empty.\n")

		return err
	}

	_, err := fmt.Fprintf(w,
		"\tCompressed %d => %d bytes (%d.%03d%%)\n"+
			"\tCompression time: %d ms (%d MB/s)\n"+
			"\tDecompression time: %d ms (%d MB/s)\n",
		r.OriginalBytes, r.CompressedBytes,
		r.CompressedBytes*100/r.OriginalBytes, r.CompressedBytes*100000/r.OriginalBytes%1000,
		max(r.CompressTime, 1).Milliseconds(), r.throughput(r.CompressTime),
		max(r.DecompressTime, 1).Milliseconds(), r.throughput(r.DecompressTime),
	)

	return err
}
