// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/siderolabs/gen/xtesting/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	cfg := must.Value(parseFlags("xpack-benchmark", nil))(t)
	assert.Equal(t, config{codec: "zstd", level: 6, chunkSize: 524288, paths: []string{"-"}}, *cfg)

	cfg = must.Value(parseFlags("xpack-benchmark", []string{"-C", "lz4", "-3s", "8192", "a", "b"}))(t)
	assert.Equal(t, config{codec: "lz4", level: 3, chunkSize: 8192, paths: []string{"a", "b"}}, *cfg)
}

func TestRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "text"), []byte(strings.Repeat("benchmark\n", 5000)), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty"), nil, 0o644))

	for _, codec := range []string{"zstd", "lz4"} {
		t.Run(codec, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr bytes.Buffer

			code := run([]string{"xpack-benchmark", "-C", codec, "-s", "4096", "-2",
				filepath.Join(dir, "text"),
				filepath.Join(dir, "missing"),
				filepath.Join(dir, "empty"),
				"-",
			}, strings.NewReader("from stdin"), &stdout, &stderr)

			// the missing file doesn't stop the benchmark
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr.String(), "unable to open file for reading")

			output := stdout.String()

			assert.True(t, strings.HasPrefix(output, "Benchmarking XPACK compression:\n\tChunk size: 4096\n\tCompression level: 2\n"), output)
			assert.Regexp(t, regexp.MustCompile(`Processing .*text\.\.\.\n\tCompressed 50000 => \d+ bytes \(\d+\.\d{3}%\)\n\tCompression time: \d+ ms \(\d+ MB/s\)\n\tDecompression time: \d+ ms \(\d+ MB/s\)\n`), output)
			assert.Contains(t, output, "empty...\n\tFile was empty.\n")
			assert.Contains(t, output, "Processing standard input...\n\tCompressed 10 => 10 bytes (100.000%)\n")
			assert.NotContains(t, output, "missing")
		})
	}
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	assert.Equal(t, 1, run([]string{"xpack-benchmark", "-C", "gzip"}, strings.NewReader(""), &stdout, &stderr))
	assert.Contains(t, stderr.String(), `unknown codec \"gzip\"`)
	assert.Empty(t, stdout.String())

	stderr.Reset()

	assert.Equal(t, 0, run([]string{"xpack-benchmark", "-h"}, strings.NewReader(""), &stdout, &stderr))
	assert.True(t, strings.HasPrefix(stdout.String(), "Usage: xpack-benchmark "))
	assert.Empty(t, stderr.String())
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
