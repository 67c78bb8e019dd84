// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package main implements the xpack compression tool.
//
// Invoked as xunpack, it decompresses by default.
package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/siderolabs/go-xpack/internal/cliutil"
	"github.com/siderolabs/go-xpack/pipeline"
	"github.com/siderolabs/go-xpack/zstd"
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin, stdout *os.File, stderr io.Writer) int {
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

	codec, err := zstd.NewCodec(cfg.level)
	if err != nil {
		logger.Error("failed to initialize codec", zap.String("reason", err.Error()))

		return 1
	}

	defer codec.Close() //nolint:errcheck

	p, err := pipeline.New(codec,
		pipeline.WithLogger(logger),
		pipeline.WithStreams(stdin, stdout),
		pipeline.WithLevel(cfg.level),
		pipeline.WithChunkSize(cfg.chunkSize),
		pipeline.WithSuffix(cfg.suffix),
		pipeline.WithStdout(cfg.toStdout),
		pipeline.WithDecompress(cfg.decompress),
		pipeline.WithForce(cfg.force),
		pipeline.WithKeep(cfg.keep),
	)
	if err != nil {
		logger.Error("invalid options", zap.String("reason", err.Error()))

		return 1
	}

	return pipeline.Worst(p.Run(cfg.paths)).ExitCode()
}
