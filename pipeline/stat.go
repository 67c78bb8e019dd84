// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package pipeline

import (
	"io/fs"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

// fileStat is the subset of the source file metadata which is checked and restored.
type fileStat struct {
	atime time.Time
	mtime time.Time

	nlink uint64
	uid   int
	gid   int

	mode fs.FileMode
}

// restorableMode is the part of the mode copied to the output.
const restorableMode = fs.ModePerm | fs.ModeSetuid | fs.ModeSetgid | fs.ModeSticky

func isTerminal(f *os.File) bool {
	fd := f.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
