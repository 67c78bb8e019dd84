// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package xpack

import (
	"io"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Encoder splits a stream into chunks and compresses each one with a Codec.
//
// Encoder buffers are sized once for the configured chunk size, so an Encoder
// can be reused for any number of streams. Encoder is not safe for concurrent use.
type Encoder struct {
	codec Codec

	original   []byte
	compressed []byte
	hdr        []byte

	opt Options
}

// NewEncoder creates new Encoder.
func NewEncoder(codec Codec, opts ...OptionFunc) (*Encoder, error) {
	opt, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Encoder{
		codec:      codec,
		opt:        opt,
		original:   make([]byte, opt.ChunkSize),
		compressed: make([]byte, 0, opt.ChunkSize-1),
		hdr:        make([]byte, 0, ChunkHeaderSize),
	}, nil
}

// Header returns the file header written by the Encoder.
func (e *Encoder) Header() FileHeader {
	return NewFileHeader(e.opt.ChunkSize, e.opt.Level)
}

// WriteHeader writes the file header to w.
func (e *Encoder) WriteHeader(w io.Writer) error {
	return WriteFileHeader(w, e.Header())
}

// Encode writes the file header followed by all chunks of r.
func (e *Encoder) Encode(w io.Writer, r io.Reader) (Stats, error) {
	if err := e.WriteHeader(w); err != nil {
		return Stats{}, err
	}

	return e.EncodeChunks(w, r)
}

// EncodeChunks reads r until EOF, writing a chunk record for every chunk read.
//
// The last chunk might be shorter than the chunk size.
func (e *Encoder) EncodeChunks(w io.Writer, r io.Reader) (Stats, error) {
	var stats Stats

	for {
		n, err := io.ReadFull(r, e.original)

		eof := errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
		if err != nil && !eof {
			return stats, errors.Wrap(err, "error reading input")
		}

		if n > 0 {
			hdr, werr := e.encodeChunk(w, e.original[:n])
			if werr != nil {
				return stats, werr
			}

			stats.add(hdr)
		}

		if eof {
			e.opt.Logger.Debug("encoded stream",
				zap.Int("chunks", stats.Chunks),
				zap.Int("raw_chunks", stats.RawChunks),
				zap.Int64("original_bytes", stats.OriginalBytes),
				zap.Int64("stored_bytes", stats.StoredBytes),
			)

			return stats, nil
		}
	}
}

func (e *Encoder) encodeChunk(w io.Writer, chunk []byte) (ChunkHeader, error) {
	maxSize := len(chunk) - 1
	stored := chunk

	// an empty result is treated the same as "did not shrink"
	if compressed := e.codec.TryCompress(chunk, e.compressed[:0], maxSize).ValueOrZero(); len(compressed) > 0 && len(compressed) <= maxSize {
		stored = compressed
		e.compressed = compressed[:0]
	}

	hdr := ChunkHeader{
		StoredSize:   uint32(len(stored)),
		OriginalSize: uint32(len(chunk)),
	}

	e.hdr = hdr.Append(e.hdr[:0])

	if _, err := w.Write(e.hdr); err != nil {
		return hdr, errors.Wrap(err, "error writing chunk header")
	}

	if _, err := w.Write(stored); err != nil {
		return hdr, errors.Wrap(err, "error writing chunk")
	}

	return hdr, nil
}
