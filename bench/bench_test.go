// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package bench_test

import (
	"bytes"
	cryptorand "crypto/rand"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/siderolabs/gen/optional"
	"github.com/siderolabs/gen/xtesting/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/siderolabs/go-xpack"
	"github.com/siderolabs/go-xpack/bench"
	"github.com/siderolabs/go-xpack/lz4"
	"github.com/siderolabs/go-xpack/zstd"
)

// halfCodec "compresses" to the first half of the chunk.
type halfCodec struct {
	decompress func(src, dest []byte, size int) ([]byte, error)
}

func (halfCodec) TryCompress(src, dest []byte, _ int) optional.Optional[[]byte] {
	return optional.Some(append(dest, src[:len(src)/2]...))
}

func (c halfCodec) Decompress(src, dest []byte, size int) ([]byte, error) {
	return c.decompress(src, dest, size)
}

func TestRun(t *testing.T) {
	t.Parallel()

	compressible := []byte(strings.Repeat("benchmark ", 10000))
	random := must.Value(io.ReadAll(io.LimitReader(cryptorand.Reader, 10000)))(t)

	for _, test := range []struct {
		newCodec func(t *testing.T) xpack.Codec
		name     string
	}{
		{
			name: "zstd",
			newCodec: func(t *testing.T) xpack.Codec {
				codec := must.Value(zstd.NewCodec(3))(t)
				t.Cleanup(func() { require.NoError(t, codec.Close()) })

				return codec
			},
		},
		{
			name: "lz4",
			newCodec: func(t *testing.T) xpack.Codec {
				return must.Value(lz4.NewCodec(3))(t)
			},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			b := must.Value(bench.New(test.newCodec(t),
				bench.WithChunkSize(4096),
				bench.WithLevel(3),
				bench.WithLogger(zaptest.NewLogger(t)),
			))(t)

			res := must.Value(b.Run(bytes.NewReader(compressible)))(t)

			assert.False(t, res.Empty())
			assert.EqualValues(t, len(compressible), res.OriginalBytes)
			assert.Less(t, res.CompressedBytes, res.OriginalBytes)
			assert.Equal(t, 25, res.Chunks)
			assert.Equal(t, 25, res.CompressedChunks)
			assert.Less(t, res.Ratio(), 10.0)

			// the benchmark is reusable
			res = must.Value(b.Run(bytes.NewReader(random)))(t)

			assert.EqualValues(t, len(random), res.OriginalBytes)
			assert.Equal(t, res.OriginalBytes, res.CompressedBytes)
			assert.Equal(t, 3, res.Chunks)
			assert.Zero(t, res.CompressedChunks)
			assert.Zero(t, res.DecompressTime)

			res = must.Value(b.Run(bytes.NewReader(nil)))(t)
			assert.True(t, res.Empty())
			assert.Zero(t, res.Chunks)
		})
	}
}

func TestRunVerification(t *testing.T) {
	t.Parallel()

	data := bytes.Repeat([]byte{1, 2, 3, 4}, 1024)

	for _, test := range []struct {
		decompress func(src, dest []byte, size int) ([]byte, error)
		name       string
		check      func(t *testing.T, err error)
	}{
		{
			name: "mismatch",
			decompress: func(_, dest []byte, size int) ([]byte, error) {
				return append(dest, make([]byte, size)...), nil
			},
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, bench.ErrVerify))
				assert.EqualError(t, err, "data did not decompress to original")
			},
		},
		{
			name: "failure",
			decompress: func([]byte, []byte, int) ([]byte, error) {
				return nil, errors.New("boom")
			},
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, xpack.ErrCorrupt))
				assert.EqualError(t, err, "failed to decompress data: boom")
			},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			b := must.Value(bench.New(halfCodec{decompress: test.decompress}, bench.WithChunkSize(xpack.MinChunkSize)))(t)

			_, err := b.Run(bytes.NewReader(data))
			require.Error(t, err)

			test.check(t, err)
		})
	}
}

func TestReadError(t *testing.T) {
	t.Parallel()

	b := must.Value(bench.New(halfCodec{}))(t)

	_, err := b.Run(io.MultiReader(bytes.NewReader([]byte("abc")), iotestErrReader{}))
	assert.EqualError(t, err, "error reading input: broken pipe")
}

type iotestErrReader struct{}

func (iotestErrReader) Read([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestWriteReport(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		name     string
		expected string
		result   bench.Result
	}{
		{
			name:     "empty",
			expected: "\tFile was empty.\n",
		},
		{
			name: "compressed",
			result: bench.Result{
				OriginalBytes:   1000000,
				CompressedBytes: 333333,
				CompressTime:    10 * time.Millisecond,
				DecompressTime:  0,
			},
			expected: "\tCompressed 1000000 => 333333 bytes (33.333%)\n" +
				"\tCompression time: 10 ms (100 MB/s)\n" +
				"\tDecompression time: 0 ms (1000000000 MB/s)\n",
		},
		{
			name: "incompressible",
			result: bench.Result{
				OriginalBytes:   2048,
				CompressedBytes: 2048,
				CompressTime:    2 * time.Second,
			},
			expected: "\tCompressed 2048 => 2048 bytes (100.000%)\n" +
				"\tCompression time: 2000 ms (0 MB/s)\n" +
				"\tDecompression time: 0 ms (2048000 MB/s)\n",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			var buf strings.Builder

			require.NoError(t, test.result.WriteReport(&buf))
			assert.Equal(t, test.expected, buf.String())
		})
	}
}

func TestWriteHeader(t *testing.T) {
	t.Parallel()

	b := must.Value(bench.New(halfCodec{}, bench.WithChunkSize(65536), bench.WithLevel(9)))(t)

	var buf strings.Builder

	require.NoError(t, b.WriteHeader(&buf))
	assert.Equal(t, "Benchmarking XPACK compression:\n\tChunk size: 65536\n\tCompression level: 9\n", buf.String())
}

func TestNewOptions(t *testing.T) {
	t.Parallel()

	_, err := bench.New(halfCodec{}, bench.WithChunkSize(xpack.MaxChunkSize+1))
	assert.EqualError(t, err, "chunk size should be in range [1024, 67108864]: 67108865")

	_, err = bench.New(halfCodec{}, bench.WithLevel(0))
	assert.EqualError(t, err, "compression level should be in range [1, 9]: 0")
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
