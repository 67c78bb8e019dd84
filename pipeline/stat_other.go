// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package pipeline

import "os"

func statFile(f *os.File) (fileStat, error) {
	info, err := f.Stat()
	if err != nil {
		return fileStat{}, err
	}

	// no link count or access time here, treat the file as singly linked
	return fileStat{
		mode:  info.Mode(),
		nlink: 1,
		uid:   -1,
		gid:   -1,
		atime: info.ModTime(),
		mtime: info.ModTime(),
	}, nil
}

func restoreOwner(*os.File, fileStat) error {
	return nil
}

func restoreTimes(_ *os.File, path string, st fileStat) error {
	return os.Chtimes(path, st.atime, st.mtime)
}
