// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

//go:build !race

package xpack_test

import (
	"bytes"
	"crypto/rand"
	"io"
	"testing"

	"github.com/siderolabs/gen/xtesting/must"
	"github.com/stretchr/testify/require"

	"github.com/siderolabs/go-xpack"
	"github.com/siderolabs/go-xpack/lz4"
	"github.com/siderolabs/go-xpack/zstd"
)

func benchmarkCodecs(b *testing.B) []struct {
	codec xpack.Codec
	name  string
} {
	zstdCodec := must.Value(zstd.NewCodec(xpack.DefaultLevel))(b)
	b.Cleanup(func() { require.NoError(b, zstdCodec.Close()) })

	return []struct {
		codec xpack.Codec
		name  string
	}{
		{
			name:  "stored",
			codec: stubCodec{},
		},
		{
			name:  "zstd",
			codec: zstdCodec,
		},
		{
			name:  "lz4",
			codec: must.Value(lz4.NewCodec(1))(b),
		},
	}
}

// benchmarkData is half random, half repetitive.
func benchmarkData(b *testing.B) []byte {
	random, err := io.ReadAll(io.LimitReader(rand.Reader, 1<<20))
	require.NoError(b, err)

	return append(random, bytes.Repeat([]byte("0123456789abcdef"), 1<<16)...)
}

func BenchmarkEncode(b *testing.B) {
	data := benchmarkData(b)

	for _, test := range benchmarkCodecs(b) {
		b.Run(test.name, func(b *testing.B) {
			enc, err := xpack.NewEncoder(test.codec, xpack.WithChunkSize(65536))
			require.NoError(b, err)

			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				_, err := enc.Encode(io.Discard, bytes.NewReader(data))
				require.NoError(b, err)
			}
		})
	}
}

func BenchmarkDecode(b *testing.B) {
	data := benchmarkData(b)

	for _, test := range benchmarkCodecs(b) {
		b.Run(test.name, func(b *testing.B) {
			encoded := encode(b, test.codec, data, xpack.WithChunkSize(65536))

			dec, err := xpack.NewDecoder(test.codec)
			require.NoError(b, err)

			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				_, _, err := dec.Decode(io.Discard, bytes.NewReader(encoded))
				require.NoError(b, err)
			}
		})
	}
}
