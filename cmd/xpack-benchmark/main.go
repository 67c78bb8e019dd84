// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package main implements the XPACK compression benchmark.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/siderolabs/go-xpack"
	"github.com/siderolabs/go-xpack/bench"
	"github.com/siderolabs/go-xpack/internal/cliutil"
	"github.com/siderolabs/go-xpack/lz4"
	"github.com/siderolabs/go-xpack/pipeline"
	"github.com/siderolabs/go-xpack/zstd"
)

type config struct {
	codec string
	paths []string

	level     int
	chunkSize int

	verbose bool
	help    bool
	version bool
}

func parseFlags(prog string, args []string) (*config, error) {
	cfg := &config{}

	flags := pflag.NewFlagSet(prog, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)

	cliutil.LevelFlags(flags, &cfg.level)
	cliutil.ChunkSizeFlag(flags, &cfg.chunkSize)

	flags.StringVarP(&cfg.codec, "codec", "C", "zstd", "block codec (zstd or lz4)")
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false, "log per-file statistics")
	flags.BoolVarP(&cfg.help, "help", "h", false, "print this help")
	flags.BoolVarP(&cfg.version, "version", "V", false, "show version and legal information")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	cfg.paths = lo.Ternary(flags.NArg() == 0, []string{pipeline.StdStream}, flags.Args())

	return cfg, nil
}

func usage(w io.Writer, prog string) {
	fmt.Fprintf(w, `Usage: %s [-123456789hvV] [-C CODEC] [-L LVL] [-s SIZE] [FILE]...
Benchmark XPACK compression and decompression on the specified FILEs.

Options:
  -1        fastest (worst) compression
  -9        slowest (best) compression
  -C CODEC  block codec: zstd or lz4 (default zstd)
  -h        print this help
  -L LVL    compression level [1-9] (default %d)
  -s SIZE   chunk size (default %d)
  -v        log per-file statistics
  -V        show version and legal information
`, prog, xpack.DefaultLevel, xpack.DefaultChunkSize)
}

func showVersion(w io.Writer) {
	fmt.Fprint(w, `XPACK compression benchmark program, experimental version

This program is free software which may be modified and/or redistributed
under the terms of the Mozilla Public License, v. 2.0.  There is NO WARRANTY,
to the extent permitted by law.
`)
}

// codecCloser is implemented by codecs holding resources.
type codecCloser interface {
	Close() error
}

func newCodec(name string, level int) (xpack.Codec, error) {
	switch strings.ToLower(name) {
	case "zstd":
		return zstd.NewCodec(level)
	case "lz4":
		return lz4.NewCodec(level)
	default:
		return nil, errors.Newf("unknown codec %q", name)
	}
}

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	prog := cliutil.ProgramName(args[0])

	cfg, err := parseFlags(prog, args[1:])
	if err != nil {
		fmt.Fprintf(stderr, "%s: %s\n", prog, err)
		usage(stderr, prog)

		return 1
	}

	switch {
	case cfg.help:
		usage(stdout, prog)

		return 0
	case cfg.version:
		showVersion(stdout)

		return 0
	}

	logger := cliutil.NewLogger(stderr, prog, cfg.verbose)

	codec, err := newCodec(cfg.codec, cfg.level)
	if err != nil {
		logger.Error("failed to initialize codec", zap.String("reason", err.Error()))

		return 1
	}

	if closer, ok := codec.(codecCloser); ok {
		defer closer.Close() //nolint:errcheck
	}

	b, err := bench.New(codec,
		bench.WithChunkSize(cfg.chunkSize),
		bench.WithLevel(cfg.level),
		bench.WithLogger(logger),
	)
	if err != nil {
		logger.Error("invalid options", zap.String("reason", err.Error()))

		return 1
	}

	if err = b.WriteHeader(stdout); err != nil {
		logger.Error("failed to write output", zap.String("reason", err.Error()))

		return 1
	}

	logger.Debug("benchmark settings", zap.String("codec", cfg.codec), zap.String("chunk_size", humanize.IBytes(uint64(cfg.chunkSize))))

	failed := false

	for _, path := range cfg.paths {
		if err = benchmarkFile(b, path, stdin, stdout); err != nil {
			logger.Error("failed", zap.String("file", path), zap.String("reason", err.Error()))

			failed = true
		}
	}

	return lo.Ternary(failed, 1, 0)
}

func benchmarkFile(b *bench.Benchmark, path string, stdin io.Reader, stdout io.Writer) error {
	name := path
	r := stdin

	if path == pipeline.StdStream {
		name = "standard input"
	} else {
		f, err := os.Open(path)
		if err != nil {
			return errors.Wrap(err, "unable to open file for reading")
		}

		defer f.Close() //nolint:errcheck

		r = f
	}

	fmt.Fprintf(stdout, "Processing %s...\n", name)

	res, err := b.Run(r)
	if err != nil {
		return err
	}

	return res.WriteReport(stdout)
}
