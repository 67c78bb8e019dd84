// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package xpack

import (
	"io"

	"github.com/cockroachdb/errors"
)

var (
	// ErrFormat marks errors caused by an invalid file header.
	ErrFormat = errors.New("format error")

	// ErrCorrupt marks errors caused by invalid chunk data.
	ErrCorrupt = errors.New("corruption error")
)

func formatErrorf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrFormat)
}

func corruptErrorf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrCorrupt)
}

// errUnexpectedEOF is a corruption error which still matches io.ErrUnexpectedEOF.
func errUnexpectedEOF() error {
	return errors.Mark(errors.Mark(errors.New("unexpected end-of-file"), io.ErrUnexpectedEOF), ErrCorrupt)
}
