// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package xpack implements the XPACK chunked container format.
//
// A compressed stream is a 16-byte file header followed by zero or more
// chunk records. Every chunk is compressed independently with a block Codec;
// chunks which the codec can't shrink are stored raw, so a chunk never
// grows by more than its 8-byte header.
package xpack

import "github.com/siderolabs/gen/optional"

const (
	// Magic identifies the XPACK format.
	Magic = "XPACK\x00\x00\x00"

	// Version is the only understood format version.
	Version = 1

	// FileHeaderSize is the size of the fixed part of the file header.
	FileHeaderSize = 16

	// ChunkHeaderSize is the size of the header preceding each chunk payload.
	ChunkHeaderSize = 8

	// MinChunkSize is the smallest chunk size accepted in a file header.
	MinChunkSize = 1024

	// MaxChunkSize is the largest chunk size accepted in a file header.
	MaxChunkSize = 64 << 20

	// DefaultChunkSize is the chunk size used when none is configured.
	DefaultChunkSize = 524288

	// MinLevel is the fastest compression level.
	MinLevel = 1

	// MaxLevel is the slowest (best) compression level.
	MaxLevel = 9

	// DefaultLevel is the compression level used when none is configured.
	DefaultLevel = 6

	// DefaultSuffix is the filename suffix of compressed files (without the dot).
	DefaultSuffix = "xpack"
)

// Codec implements an opaque block compression transform.
//
// TryCompress and Decompress append to the dest slice and return the result.
//
// Codec is not required to be safe for concurrent use.
type Codec interface {
	// TryCompress compresses src.
	//
	// The result is present only if the compressed data fits into maxSize bytes.
	TryCompress(src, dest []byte, maxSize int) optional.Optional[[]byte]

	// Decompress decompresses src, which must expand to exactly size bytes.
	Decompress(src, dest []byte, size int) ([]byte, error)
}

// Stats summarizes the chunks which passed through an Encoder or a Decoder.
type Stats struct {
	Chunks        int
	RawChunks     int
	OriginalBytes int64
	StoredBytes   int64
}

func (s *Stats) add(hdr ChunkHeader) {
	s.Chunks++

	if hdr.IsRaw() {
		s.RawChunks++
	}

	s.OriginalBytes += int64(hdr.OriginalSize)
	s.StoredBytes += int64(hdr.StoredSize)
}
