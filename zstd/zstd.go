// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package zstd implements xpack.Codec using zstd compression.
package zstd

import (
	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/zstd"
	"github.com/siderolabs/gen/optional"

	"github.com/siderolabs/go-xpack"
)

// Codec implements xpack.Codec using zstd compression.
//
// Every chunk is encoded as a single zstd frame.
type Codec struct {
	dec *zstd.Decoder
	enc *zstd.Encoder
}

// NewCodec creates new Codec for the compression level in range [1, 9].
//
// Extra encoder options are applied after the level.
func NewCodec(level int, opts ...zstd.EOption) (*Codec, error) {
	if level < xpack.MinLevel || level > xpack.MaxLevel {
		return nil, errors.Newf("compression level should be in range [%d, %d]: %d", xpack.MinLevel, xpack.MaxLevel, level)
	}

	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(xpack.MaxChunkSize),
	)
	if err != nil {
		return nil, err
	}

	enc, err := zstd.NewWriter(nil, append([]zstd.EOption{
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)),
		zstd.WithEncoderConcurrency(1),
	}, opts...)...)
	if err != nil {
		dec.Close()

		return nil, err
	}

	return &Codec{
		dec: dec,
		enc: enc,
	}, nil
}

// TryCompress implements xpack.Codec.
func (c *Codec) TryCompress(src, dest []byte, maxSize int) optional.Optional[[]byte] {
	if maxSize <= 0 {
		return optional.None[[]byte]()
	}

	out := c.enc.EncodeAll(src, dest)
	if len(out)-len(dest) > maxSize {
		return optional.None[[]byte]()
	}

	return optional.Some(out)
}

// Decompress implements xpack.Codec.
func (c *Codec) Decompress(src, dest []byte, size int) ([]byte, error) {
	// reject a frame which declares the wrong size before decoding it
	if declared, err := c.DecompressedSize(src); err == nil && declared != int64(size) {
		return nil, errors.Newf("frame content size mismatch: %d != %d", declared, size)
	}

	out, err := c.dec.DecodeAll(src, dest)
	if err != nil {
		return nil, err
	}

	if len(out)-len(dest) != size {
		return nil, errors.Newf("decompressed size mismatch: %d != %d", len(out)-len(dest), size)
	}

	return out, nil
}

// DecompressedSize returns the size of the decompressed data.
func (c *Codec) DecompressedSize(src []byte) (int64, error) {
	if len(src) == 0 {
		return 0, nil
	}

	var header zstd.Header

	if err := header.Decode(src); err != nil {
		return 0, err
	}

	if header.HasFCS {
		return int64(header.FrameContentSize), nil
	}

	return 0, errors.New("frame content size is not set")
}

// Close releases decoder resources.
func (c *Codec) Close() error {
	c.dec.Close()

	return c.enc.Close()
}
