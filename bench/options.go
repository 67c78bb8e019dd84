// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package bench

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/siderolabs/go-xpack"
)

// Options defines settings for Benchmark.
type Options struct {
	Logger *zap.Logger

	ChunkSize int
	// Level is reported in the header, the codec is expected to be built for it.
	Level int
}

func defaultOptions() Options {
	return Options{
		Logger:    zap.NewNop(),
		ChunkSize: xpack.DefaultChunkSize,
		Level:     xpack.DefaultLevel,
	}
}

// Option allows setting Benchmark options.
type Option func(*Options) error

// WithChunkSize sets the size of chunks the input is split into.
func WithChunkSize(size int) Option {
	return func(opt *Options) error {
		if size < xpack.MinChunkSize || size > xpack.MaxChunkSize {
			return fmt.Errorf("chunk size should be in range [%d, %d]: %d", xpack.MinChunkSize, xpack.MaxChunkSize, size)
		}

		opt.ChunkSize = size

		return nil
	}
}

// WithLevel sets the compression level.
func WithLevel(level int) Option {
	return func(opt *Options) error {
		if level < xpack.MinLevel || level > xpack.MaxLevel {
			return fmt.Errorf("compression level should be in range [%d, %d]: %d", xpack.MinLevel, xpack.MaxLevel, level)
		}

		opt.Level = level

		return nil
	}
}

// WithLogger sets logger for Benchmark.
func WithLogger(logger *zap.Logger) Option {
	return func(opt *Options) error {
		opt.Logger = logger

		return nil
	}
}
