// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package pipeline

import (
	"os"
	"strings"
	"unicode/utf8"
)

// StdStream is the path which selects standard input.
const StdStream = "-"

func isStdStream(path string) bool {
	return path == "" || path == StdStream
}

// suffixIndex returns the index of the dot starting the suffix in path, or -1.
//
// Only the last dot of the filename is considered, and the filename should not consist of the suffix alone.
func suffixIndex(path, suffix string) int {
	sep := strings.LastIndexFunc(path, func(r rune) bool { return r < utf8.RuneSelf && os.IsPathSeparator(uint8(r)) })
	base := path[sep+1:]

	dot := strings.LastIndexByte(base, '.')
	if dot <= 0 || base[dot+1:] != suffix {
		return -1
	}

	return sep + 1 + dot
}

// HasSuffix reports whether the filename in path ends with "." + suffix.
func HasSuffix(path, suffix string) bool {
	return suffixIndex(path, suffix) != -1
}

// CompressedPath returns the output path for compressing path.
func CompressedPath(path, suffix string) string {
	return path + "." + suffix
}

// DecompressedPath strips the suffix from path.
//
// If path doesn't have the suffix, ok is false.
func DecompressedPath(path, suffix string) (newPath string, ok bool) {
	idx := suffixIndex(path, suffix)
	if idx == -1 {
		return "", false
	}

	return path[:idx], true
}
