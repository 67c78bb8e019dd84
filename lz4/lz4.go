// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package lz4 implements xpack.Codec using LZ4 block compression.
package lz4

import (
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/pierrec/lz4/v4"
	"github.com/siderolabs/gen/optional"

	"github.com/siderolabs/go-xpack"
)

var levels = [...]lz4.CompressionLevel{
	lz4.Fast,
	lz4.Level2,
	lz4.Level3,
	lz4.Level4,
	lz4.Level5,
	lz4.Level6,
	lz4.Level7,
	lz4.Level8,
	lz4.Level9,
}

// Codec implements xpack.Codec using LZ4 blocks.
//
// Level 1 uses the fast compressor, higher levels use the HC compressor.
type Codec struct {
	fast lz4.Compressor
	hc   lz4.CompressorHC

	// compression scratch space, sized to the block bound
	scratch []byte

	level int
}

// NewCodec creates new Codec for the compression level in range [1, 9].
func NewCodec(level int) (*Codec, error) {
	if level < xpack.MinLevel || level > xpack.MaxLevel {
		return nil, errors.Newf("compression level should be in range [%d, %d]: %d", xpack.MinLevel, xpack.MaxLevel, level)
	}

	return &Codec{
		level: level,
		hc:    lz4.CompressorHC{Level: levels[level-1]},
	}, nil
}

// TryCompress implements xpack.Codec.
func (c *Codec) TryCompress(src, dest []byte, maxSize int) optional.Optional[[]byte] {
	if maxSize <= 0 || len(src) == 0 {
		return optional.None[[]byte]()
	}

	if bound := lz4.CompressBlockBound(len(src)); cap(c.scratch) < bound {
		c.scratch = make([]byte, bound)
	}

	scratch := c.scratch[:cap(c.scratch)]

	var (
		n   int
		err error
	)

	if c.level == xpack.MinLevel {
		n, err = c.fast.CompressBlock(src, scratch)
	} else {
		n, err = c.hc.CompressBlock(src, scratch)
	}

	// n == 0 means the block is incompressible
	if err != nil || n == 0 || n > maxSize {
		return optional.None[[]byte]()
	}

	return optional.Some(append(dest, scratch[:n]...))
}

// Decompress implements xpack.Codec.
func (c *Codec) Decompress(src, dest []byte, size int) ([]byte, error) {
	out := slices.Grow(dest, size)[:len(dest)+size]

	n, err := lz4.UncompressBlock(src, out[len(dest):])
	if err != nil {
		return nil, errors.Wrap(err, "lz4 decompress")
	}

	if n != size {
		return nil, errors.Newf("decompressed size mismatch: %d != %d", n, size)
	}

	return out, nil
}
