// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/siderolabs/go-xpack"
	"github.com/siderolabs/go-xpack/internal/cliutil"
)

type config struct {
	suffix string
	paths  []string

	level     int
	chunkSize int

	toStdout   bool
	decompress bool
	force      bool
	keep       bool
	verbose    bool
	help       bool
	version    bool
}

// isUnpack reports whether the program was invoked under the decompression name.
func isUnpack(prog string) bool {
	return strings.EqualFold(prog, "xunpack") || strings.EqualFold(prog, "xunpack.exe")
}

func parseFlags(prog string, args []string) (*config, error) {
	cfg := &config{
		decompress: isUnpack(prog),
	}

	flags := pflag.NewFlagSet(prog, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.SortFlags = false

	cliutil.LevelFlags(flags, &cfg.level)
	cliutil.ChunkSizeFlag(flags, &cfg.chunkSize)

	flags.BoolVarP(&cfg.toStdout, "stdout", "c", false, "write to standard output")
	flags.BoolVarP(&cfg.decompress, "decompress", "d", cfg.decompress, "decompress")
	flags.BoolVarP(&cfg.force, "force", "f", false, "overwrite existing output files")
	flags.BoolVarP(&cfg.keep, "keep", "k", false, "don't delete input files")
	flags.StringVarP(&cfg.suffix, "suffix", "S", xpack.DefaultSuffix, "use suffix .SUF instead of .xpack")
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false, "log per-file statistics")
	flags.BoolVarP(&cfg.help, "help", "h", false, "print this help")
	flags.BoolVarP(&cfg.version, "version", "V", false, "show version and legal information")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	cfg.paths = flags.Args()

	return cfg, nil
}

func usage(w io.Writer, prog string) {
	fmt.Fprintf(w, `Usage: %s [-123456789cdfhkvV] [-L LVL] [-s SIZE] [-S SUF] [FILE]...
Compress or decompress the specified FILEs.

Options:
  -1        fastest (worst) compression
  -9        slowest (best) compression
  -c        write to standard output
  -d        decompress
  -f        overwrite existing output files
  -h        print this help
  -k        don't delete input files
  -L LVL    compression level [1-9] (default %d)
  -s SIZE   chunk size (default %d)
  -S SUF    use suffix .SUF instead of .%s
  -v        log per-file statistics
  -V        show version and legal information

NOTICE: this program is currently experimental, and the on-disk format
is not yet stable!
`, prog, xpack.DefaultLevel, xpack.DefaultChunkSize, xpack.DefaultSuffix)
}

func showVersion(w io.Writer) {
	fmt.Fprint(w, `xpack compression program, experimental version

This program is free software which may be modified and/or redistributed
under the terms of the Mozilla Public License, v. 2.0.  There is NO WARRANTY,
to the extent permitted by law.
`)
}
