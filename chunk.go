// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package xpack

import "encoding/binary"

// ChunkHeader precedes every chunk payload.
type ChunkHeader struct {
	// size of the payload as stored in the stream
	StoredSize uint32
	// size of the payload once reconstructed
	OriginalSize uint32
}

// IsRaw reports whether the payload is stored uncompressed.
func (h ChunkHeader) IsRaw() bool {
	return h.StoredSize == h.OriginalSize
}

// Append appends the encoded header to b.
func (h ChunkHeader) Append(b []byte) []byte {
	b = binary.LittleEndian.AppendUint32(b, h.StoredSize)

	return binary.LittleEndian.AppendUint32(b, h.OriginalSize)
}

// ParseChunkHeader decodes a chunk header, b should be at least ChunkHeaderSize bytes.
func ParseChunkHeader(b []byte) ChunkHeader {
	return ChunkHeader{
		StoredSize:   binary.LittleEndian.Uint32(b[0:4]),
		OriginalSize: binary.LittleEndian.Uint32(b[4:8]),
	}
}

// Validate checks the header against the chunk size declared by the file header.
func (h ChunkHeader) Validate(chunkSize uint32) error {
	if h.OriginalSize < 1 || h.OriginalSize > chunkSize ||
		h.StoredSize < 1 || h.StoredSize > h.OriginalSize {
		return corruptErrorf("file corrupt")
	}

	return nil
}
