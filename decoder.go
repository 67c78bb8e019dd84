// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package xpack

import (
	"io"
	"slices"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Decoder reconstructs a stream written by an Encoder.
//
// Each stream declares its own chunk size, Decoder buffers grow to the largest
// chunk size seen so far and are reused. Decoder is not safe for concurrent use.
type Decoder struct {
	codec Codec

	original []byte
	stored   []byte

	opt Options

	hdr [ChunkHeaderSize]byte
}

// NewDecoder creates new Decoder.
func NewDecoder(codec Codec, opts ...OptionFunc) (*Decoder, error) {
	opt, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Decoder{
		codec: codec,
		opt:   opt,
	}, nil
}

// ReadHeader reads and validates the file header.
func (d *Decoder) ReadHeader(r io.Reader) (FileHeader, error) {
	return ReadFileHeader(r)
}

// Decode reads the file header and writes all reconstructed chunks to w.
func (d *Decoder) Decode(w io.Writer, r io.Reader) (FileHeader, Stats, error) {
	hdr, err := d.ReadHeader(r)
	if err != nil {
		return hdr, Stats{}, err
	}

	stats, err := d.DecodeChunks(w, r, hdr.ChunkSize)

	return hdr, stats, err
}

// DecodeChunks reads chunk records from r until EOF, writing reconstructed data to w.
//
// The reader should be positioned right after the file header (and its padding).
// A single corrupt chunk aborts decoding.
func (d *Decoder) DecodeChunks(w io.Writer, r io.Reader, chunkSize uint32) (Stats, error) {
	var stats Stats

	d.resize(int(chunkSize))

	for {
		_, err := io.ReadFull(r, d.hdr[:])

		switch {
		case errors.Is(err, io.EOF):
			d.opt.Logger.Debug("decoded stream",
				zap.Int("chunks", stats.Chunks),
				zap.Int("raw_chunks", stats.RawChunks),
				zap.Int64("original_bytes", stats.OriginalBytes),
				zap.Int64("stored_bytes", stats.StoredBytes),
			)

			return stats, nil
		case errors.Is(err, io.ErrUnexpectedEOF):
			return stats, errUnexpectedEOF()
		case err != nil:
			return stats, errors.Wrap(err, "error reading chunk header")
		}

		hdr := ParseChunkHeader(d.hdr[:])

		// validate before trusting the sizes for allocation or reads
		if err = hdr.Validate(chunkSize); err != nil {
			return stats, err
		}

		data, err := d.decodeChunk(r, hdr)
		if err != nil {
			return stats, err
		}

		if _, err = w.Write(data); err != nil {
			return stats, errors.Wrap(err, "error writing output")
		}

		stats.add(hdr)
	}
}

func (d *Decoder) decodeChunk(r io.Reader, hdr ChunkHeader) ([]byte, error) {
	payload := d.stored[:hdr.StoredSize]

	if _, err := io.ReadFull(r, payload); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errUnexpectedEOF()
		}

		return nil, errors.Wrap(err, "error reading chunk")
	}

	if hdr.IsRaw() {
		return payload, nil
	}

	data, err := d.codec.Decompress(payload, d.original[:0], int(hdr.OriginalSize))
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "data corrupt"), ErrCorrupt)
	}

	if len(data) != int(hdr.OriginalSize) {
		return nil, corruptErrorf("data corrupt")
	}

	d.original = data[:0]

	return data, nil
}

func (d *Decoder) resize(chunkSize int) {
	if cap(d.stored) < chunkSize {
		d.opt.Logger.Debug("growing decoder buffers", zap.Int("chunk_size", chunkSize))

		d.stored = slices.Grow(d.stored[:0], chunkSize)
		d.original = slices.Grow(d.original[:0], chunkSize)
	}

	d.stored = d.stored[:chunkSize]
}
