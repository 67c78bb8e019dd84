// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package xpack

import (
	"fmt"

	"go.uber.org/zap"
)

// Options defines settings for Encoder and Decoder.
type Options struct {
	Logger *zap.Logger

	// ChunkSize is the uncompressed chunk size written by the Encoder.
	//
	// Decoder ignores it: the chunk size is read from each file header.
	ChunkSize int

	// Level is recorded in the file header.
	Level int
}

// defaultOptions returns default initial values.
func defaultOptions() Options {
	return Options{
		ChunkSize: DefaultChunkSize,
		Level:     DefaultLevel,
		Logger:    zap.NewNop(),
	}
}

// OptionFunc allows setting Encoder and Decoder options.
type OptionFunc func(*Options) error

// WithChunkSize sets the chunk size.
func WithChunkSize(size int) OptionFunc {
	return func(opt *Options) error {
		if size < MinChunkSize || size > MaxChunkSize {
			return fmt.Errorf("chunk size should be in range [%d, %d]: %d", MinChunkSize, MaxChunkSize, size)
		}

		opt.ChunkSize = size

		return nil
	}
}

// WithLevel sets the compression level recorded in the file header.
func WithLevel(level int) OptionFunc {
	return func(opt *Options) error {
		if level < MinLevel || level > MaxLevel {
			return fmt.Errorf("compression level should be in range [%d, %d]: %d", MinLevel, MaxLevel, level)
		}

		opt.Level = level

		return nil
	}
}

// WithLogger sets logger.
func WithLogger(logger *zap.Logger) OptionFunc {
	return func(opt *Options) error {
		opt.Logger = logger

		return nil
	}
}

func buildOptions(opts []OptionFunc) (Options, error) {
	opt := defaultOptions()

	for _, o := range opts {
		if err := o(&opt); err != nil {
			return opt, err
		}
	}

	return opt, nil
}
