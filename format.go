// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package xpack

import (
	"encoding/binary"
	"io"

	"github.com/cockroachdb/errors"
)

// FileHeader is the header at the start of every XPACK stream.
//
// Layout (little-endian):
//
//	magic       [8]byte
//	chunk_size  uint32
//	header_size uint16
//	version     uint8
//	level       uint8
type FileHeader struct {
	// ChunkSize is the nominal uncompressed size of each chunk.
	ChunkSize uint32
	// HeaderSize is the full header length, bytes past FileHeaderSize are padding.
	HeaderSize uint16
	Version    uint8
	// Level is informational only.
	Level uint8
}

// NewFileHeader returns a version 1 header without padding.
func NewFileHeader(chunkSize, level int) FileHeader {
	return FileHeader{
		ChunkSize:  uint32(chunkSize),
		HeaderSize: FileHeaderSize,
		Version:    Version,
		Level:      uint8(level),
	}
}

// AppendBinary implements encoding.BinaryAppender.
func (h FileHeader) AppendBinary(b []byte) ([]byte, error) {
	b = append(b, Magic...)
	b = binary.LittleEndian.AppendUint32(b, h.ChunkSize)
	b = binary.LittleEndian.AppendUint16(b, h.HeaderSize)
	b = append(b, h.Version, h.Level)

	return b, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (h FileHeader) MarshalBinary() ([]byte, error) {
	return h.AppendBinary(make([]byte, 0, FileHeaderSize))
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
//
// The header is validated, see ParseFileHeader.
func (h *FileHeader) UnmarshalBinary(b []byte) error {
	parsed, err := ParseFileHeader(b)
	if err != nil {
		return err
	}

	*h = parsed

	return nil
}

// ParseFileHeader decodes and validates the fixed part of a file header.
//
// All returned errors are marked with ErrFormat.
func ParseFileHeader(b []byte) (FileHeader, error) {
	if len(b) < FileHeaderSize || string(b[:len(Magic)]) != Magic {
		return FileHeader{}, formatErrorf("not in XPACK format")
	}

	h := FileHeader{
		ChunkSize:  binary.LittleEndian.Uint32(b[8:12]),
		HeaderSize: binary.LittleEndian.Uint16(b[12:14]),
		Version:    b[14],
		Level:      b[15],
	}

	if h.Version != Version {
		return FileHeader{}, formatErrorf("unsupported version (%d)", h.Version)
	}

	if h.HeaderSize < FileHeaderSize {
		return FileHeader{}, formatErrorf("incorrect header size (%d)", h.HeaderSize)
	}

	if h.ChunkSize < MinChunkSize || h.ChunkSize > MaxChunkSize {
		return FileHeader{}, formatErrorf("unsupported chunk size (%d)", h.ChunkSize)
	}

	return h, nil
}

// ReadFileHeader reads and validates a file header, skipping any padding after it.
func ReadFileHeader(r io.Reader) (FileHeader, error) {
	var buf [FileHeaderSize]byte

	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return FileHeader{}, formatErrorf("not in XPACK format")
		}

		return FileHeader{}, errors.Wrap(err, "error reading file header")
	}

	h, err := ParseFileHeader(buf[:])
	if err != nil {
		return FileHeader{}, err
	}

	// padding is reserved for future fields and is never interpreted
	if padding := int64(h.HeaderSize) - FileHeaderSize; padding > 0 {
		if _, err = io.CopyN(io.Discard, r, padding); err != nil {
			if errors.Is(err, io.EOF) {
				return FileHeader{}, errUnexpectedEOF()
			}

			return FileHeader{}, errors.Wrap(err, "error skipping file header padding")
		}
	}

	return h, nil
}

// WriteFileHeader writes the encoded header to w.
func WriteFileHeader(w io.Writer, h FileHeader) error {
	b, err := h.MarshalBinary()
	if err != nil {
		return err
	}

	if _, err = w.Write(b); err != nil {
		return errors.Wrap(err, "error writing file header")
	}

	return nil
}
