// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package pipeline

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/siderolabs/go-xpack"
)

// Options defines settings for Processor.
type Options struct {
	Logger *zap.Logger

	// Stdin and Stdout are used for the standard stream source and the -c destination.
	Stdin  *os.File
	Stdout *os.File

	Suffix string

	Level     int
	ChunkSize int

	// ToStdout writes all output to Stdout, source files are never removed.
	ToStdout bool
	// Decompress selects the direction of Run.
	Decompress bool
	// Force overwrites existing outputs and allows hard-linked files and terminals.
	Force bool
	// Keep disables removal of source files.
	Keep bool
}

// defaultOptions returns default initial values.
func defaultOptions() Options {
	return Options{
		Logger:    zap.NewNop(),
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Suffix:    xpack.DefaultSuffix,
		Level:     xpack.DefaultLevel,
		ChunkSize: xpack.DefaultChunkSize,
	}
}

// Option allows setting Processor options.
type Option func(*Options) error

// WithStdout writes the output to standard output instead of derived files.
func WithStdout(toStdout bool) Option {
	return func(opt *Options) error {
		opt.ToStdout = toStdout

		return nil
	}
}

// WithDecompress selects decompression.
func WithDecompress(decompress bool) Option {
	return func(opt *Options) error {
		opt.Decompress = decompress

		return nil
	}
}

// WithForce enables overwriting outputs and processing hard-linked files.
func WithForce(force bool) Option {
	return func(opt *Options) error {
		opt.Force = force

		return nil
	}
}

// WithKeep keeps source files after successful processing.
func WithKeep(keep bool) Option {
	return func(opt *Options) error {
		opt.Keep = keep

		return nil
	}
}

// WithSuffix sets the compressed filename suffix (without the leading dot).
func WithSuffix(suffix string) Option {
	return func(opt *Options) error {
		if suffix == "" {
			return fmt.Errorf("suffix should not be empty")
		}

		if strings.ContainsAny(suffix, `/\`) {
			return fmt.Errorf("suffix should not contain path separators: %q", suffix)
		}

		opt.Suffix = suffix

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

// WithChunkSize sets the chunk size used for compression.
func WithChunkSize(size int) Option {
	return func(opt *Options) error {
		if size < xpack.MinChunkSize || size > xpack.MaxChunkSize {
			return fmt.Errorf("chunk size should be in range [%d, %d]: %d", xpack.MinChunkSize, xpack.MaxChunkSize, size)
		}

		opt.ChunkSize = size

		return nil
	}
}

// WithStreams replaces the standard streams.
func WithStreams(stdin, stdout *os.File) Option {
	return func(opt *Options) error {
		if stdin == nil || stdout == nil {
			return fmt.Errorf("streams should be set")
		}

		opt.Stdin = stdin
		opt.Stdout = stdout

		return nil
	}
}

// WithLogger sets logger for Processor.
func WithLogger(logger *zap.Logger) Option {
	return func(opt *Options) error {
		opt.Logger = logger

		return nil
	}
}
