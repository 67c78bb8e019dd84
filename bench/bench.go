// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package bench measures codec performance on the chunked XPACK layout.
//
// Every compressed chunk is decompressed back and compared with the original,
// so the benchmark doubles as a round-trip check of the codec.
package bench

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/siderolabs/go-xpack"
)

// ErrVerify is returned when a chunk doesn't decompress to its original contents.
var ErrVerify = errors.New("data did not decompress to original")

// Benchmark runs compression and decompression of inputs chunk by chunk.
//
// Benchmark is not safe for concurrent use.
type Benchmark struct {
	codec xpack.Codec

	original     []byte
	compressed   []byte
	decompressed []byte

	opt Options
}

// New creates new Benchmark.
func New(codec xpack.Codec, opts ...Option) (*Benchmark, error) {
	b := &Benchmark{
		codec: codec,
		opt:   defaultOptions(),
	}

	for _, o := range opts {
		if err := o(&b.opt); err != nil {
			return nil, err
		}
	}

	b.original = make([]byte, b.opt.ChunkSize)
	b.compressed = make([]byte, 0, b.opt.ChunkSize)
	b.decompressed = make([]byte, 0, b.opt.ChunkSize)

	return b, nil
}

// WriteHeader prints the benchmark settings.
func (b *Benchmark) WriteHeader(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Benchmarking XPACK compression:\n\tChunk size: %d\n\tCompression level: %d\n", b.opt.ChunkSize, b.opt.Level)

	return err
}

// Run benchmarks the whole input.
//
// Chunks which don't shrink are accounted with their original size and are not decompressed.
func (b *Benchmark) Run(r io.Reader) (Result, error) {
	var res Result

	for {
		n, err := io.ReadFull(r, b.original)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return res, errors.Wrap(err, "error reading input")
		}

		if n == 0 {
			break
		}

		if err = b.runChunk(&res, b.original[:n]); err != nil {
			return res, err
		}

		if n < len(b.original) {
			break
		}
	}

	b.opt.Logger.Debug("benchmark finished",
		zap.Int("chunks", res.Chunks),
		zap.Int("compressed_chunks", res.CompressedChunks),
		zap.String("original", humanize.IBytes(res.OriginalBytes)),
		zap.String("compressed", humanize.IBytes(res.CompressedBytes)),
	)

	return res, nil
}

func (b *Benchmark) runChunk(res *Result, chunk []byte) error {
	maxSize := len(chunk) - 1

	res.Chunks++
	res.OriginalBytes += uint64(len(chunk))

	start := time.Now()
	compressed := b.codec.TryCompress(chunk, b.compressed[:0], maxSize).ValueOrZero()
	res.CompressTime += time.Since(start)

	if len(compressed) == 0 || len(compressed) > maxSize {
		res.CompressedBytes += uint64(len(chunk))

		return nil
	}

	b.compressed = compressed[:0]

	start = time.Now()
	decompressed, err := b.codec.Decompress(compressed, b.decompressed[:0], len(chunk))
	res.DecompressTime += time.Since(start)

	if err != nil {
		return errors.Mark(errors.Wrap(err, "failed to decompress data"), xpack.ErrCorrupt)
	}

	b.decompressed = decompressed[:0]

	if !bytes.Equal(chunk, decompressed) {
		return ErrVerify
	}

	res.CompressedChunks++
	res.CompressedBytes += uint64(len(compressed))

	return nil
}
