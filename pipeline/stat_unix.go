// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

//go:build linux || darwin || freebsd || netbsd || openbsd

package pipeline

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

func statFile(f *os.File) (fileStat, error) {
	info, err := f.Stat()
	if err != nil {
		return fileStat{}, err
	}

	var st unix.Stat_t

	if err = unix.Fstat(int(f.Fd()), &st); err != nil {
		return fileStat{}, err
	}

	return fileStat{
		mode:  info.Mode(),
		nlink: uint64(st.Nlink), //nolint:unconvert
		uid:   int(st.Uid),
		gid:   int(st.Gid),
		atime: time.Unix(st.Atim.Unix()),
		mtime: time.Unix(st.Mtim.Unix()),
	}, nil
}

func restoreOwner(f *os.File, st fileStat) error {
	return f.Chown(st.uid, st.gid)
}

func restoreTimes(_ *os.File, path string, st fileStat) error {
	return unix.UtimesNano(path, []unix.Timespec{
		unix.NsecToTimespec(st.atime.UnixNano()),
		unix.NsecToTimespec(st.mtime.UnixNano()),
	})
}
