// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package cliutil

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/siderolabs/go-xpack"
)

// presetValue is a boolean flag which selects a fixed compression level.
type presetValue struct {
	level  *int
	preset int
}

func (v presetValue) String() string {
	return strconv.FormatBool(v.level != nil && *v.level == v.preset)
}

func (v presetValue) Set(s string) error {
	ok, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}

	if ok {
		*v.level = v.preset
	}

	return nil
}

func (v presetValue) Type() string {
	return "bool"
}

func presetName(preset int) string {
	switch preset {
	case xpack.MinLevel:
		return "fast"
	case xpack.MaxLevel:
		return "best"
	default:
		return fmt.Sprintf("level-%d", preset)
	}
}

// LevelFlags registers -1 ... -9 and -L, all of them setting level.
//
// The last one on the command line wins.
func LevelFlags(flags *pflag.FlagSet, level *int) {
	for preset := xpack.MinLevel; preset <= xpack.MaxLevel; preset++ {
		flag := flags.VarPF(presetValue{level: level, preset: preset}, presetName(preset), strconv.Itoa(preset), fmt.Sprintf("compression level %d", preset))
		flag.NoOptDefVal = "true"
	}

	flags.IntVarP(level, "level", "L", xpack.DefaultLevel, "compression level [1-9]")
}

// chunkSizeValue accepts plain byte counts and sizes like 64KiB.
type chunkSizeValue struct {
	size *int
}

func (v chunkSizeValue) String() string {
	if v.size == nil {
		return "0"
	}

	return strconv.Itoa(*v.size)
}

func (v chunkSizeValue) Set(s string) error {
	size, err := humanize.ParseBytes(s)
	if err != nil {
		return fmt.Errorf("invalid chunk size %q", s)
	}

	if size < xpack.MinChunkSize || size > xpack.MaxChunkSize {
		return fmt.Errorf("chunk size should be in range [%d, %d]: %d", xpack.MinChunkSize, xpack.MaxChunkSize, size)
	}

	*v.size = int(size)

	return nil
}

func (v chunkSizeValue) Type() string {
	return "size"
}

// ChunkSizeFlag registers -s.
func ChunkSizeFlag(flags *pflag.FlagSet, size *int) {
	*size = xpack.DefaultChunkSize

	flags.VarP(chunkSizeValue{size: size}, "chunk-size", "s", "chunk size")
}
