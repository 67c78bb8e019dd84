// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package cliutil_test

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/siderolabs/go-xpack"
	"github.com/siderolabs/go-xpack/internal/cliutil"
)

func TestProgramName(t *testing.T) {
	t.Parallel()

	for arg0, expected := range map[string]string{
		"xpack":                  "xpack",
		"/usr/local/bin/xunpack": "xunpack",
		`C:\tools\xunpack.exe`:   "xunpack.exe",
		"./bin/":                 "",
	} {
		assert.Equal(t, expected, cliutil.ProgramName(arg0), arg0)
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf strings.Builder

	logger := cliutil.NewLogger(&buf, "xpack", false)
	logger.Debug("hidden")
	logger.Warn("skipping", zap.String("file", "a"))

	assert.Equal(t, "warn\txpack\tskipping\t{\"file\": \"a\"}\n", buf.String())

	buf.Reset()

	logger = cliutil.NewLogger(&buf, "xpack", true)
	logger.Debug("shown")

	assert.Equal(t, "debug\txpack\tshown\n", buf.String())
}

func newFlags(level, size *int) *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	cliutil.LevelFlags(flags, level)
	cliutil.ChunkSizeFlag(flags, size)

	return flags
}

func TestFlags(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		name string
		args []string

		expectedLevel int
		expectedSize  int
		expectedErr   string
	}{
		{
			name:          "defaults",
			expectedLevel: xpack.DefaultLevel,
			expectedSize:  xpack.DefaultChunkSize,
		},
		{
			name:          "preset",
			args:          []string{"-9"},
			expectedLevel: 9,
			expectedSize:  xpack.DefaultChunkSize,
		},
		{
			name:          "last wins",
			args:          []string{"-9", "-L", "3", "-1"},
			expectedLevel: 1,
			expectedSize:  xpack.DefaultChunkSize,
		},
		{
			name:          "bundled",
			args:          []string{"-2L7"},
			expectedLevel: 7,
			expectedSize:  xpack.DefaultChunkSize,
		},
		{
			name:          "size",
			args:          []string{"-s", "4096"},
			expectedLevel: xpack.DefaultLevel,
			expectedSize:  4096,
		},
		{
			name:          "human size",
			args:          []string{"-s64KiB"},
			expectedLevel: xpack.DefaultLevel,
			expectedSize:  65536,
		},
		{
			name:        "small size",
			args:        []string{"-s", "100"},
			expectedErr: `invalid argument "100" for "-s, --chunk-size" flag: chunk size should be in range [1024, 67108864]: 100`,
		},
		{
			name:        "invalid size",
			args:        []string{"-s", "lots"},
			expectedErr: `invalid argument "lots" for "-s, --chunk-size" flag: invalid chunk size "lots"`,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			var level, size int

			err := newFlags(&level, &size).Parse(test.args)
			if test.expectedErr != "" {
				assert.EqualError(t, err, test.expectedErr)

				return
			}

			require.NoError(t, err)

			assert.Equal(t, test.expectedLevel, level)
			assert.Equal(t, test.expectedSize, size)
		})
	}
}
