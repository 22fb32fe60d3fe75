// statat_linux.go - directory-relative stat, used by the scanner so
// per-entry metadata queries never need an absolute path.
//
// (c) 2024- Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

//go:build linux

package fio

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// StatAt fetches nm's metadata relative to dirfd, without following a
// trailing symlink (spec: "not following symlinks"). xattrs are not
// fetched here; callers that need them call LgetXattr separately
// against the resolved absolute path (walk/scanner.go's Scan does this
// for every regular file), since xattr syscalls have no *at() form on
// Linux.
func StatAt(dirfd int, nm string) (*Info, error) {
	var st unix.Stat_t
	if err := unix.Fstatat(dirfd, nm, &st, unix.AT_SYMLINK_NOFOLLOW); err != nil {
		return nil, err
	}

	fi := &Info{
		Ino:   st.Ino,
		Siz:   st.Size,
		Dev:   uint64(st.Dev),
		Rdev:  uint64(st.Rdev),
		Mod:   fs.FileMode(st.Mode & 0777),
		Uid:   st.Uid,
		Gid:   st.Gid,
		Nlink: uint32(st.Nlink),
		Atim:  unixTs(st.Atim),
		Mtim:  unixTs(st.Mtim),
		Ctim:  unixTs(st.Ctim),
	}
	fi.path = nm

	switch st.Mode & unix.S_IFMT {
	case unix.S_IFBLK:
		fi.Mod |= fs.ModeDevice
	case unix.S_IFCHR:
		fi.Mod |= fs.ModeDevice | fs.ModeCharDevice
	case unix.S_IFDIR:
		fi.Mod |= fs.ModeDir
	case unix.S_IFIFO:
		fi.Mod |= fs.ModeNamedPipe
	case unix.S_IFLNK:
		fi.Mod |= fs.ModeSymlink
	case unix.S_IFSOCK:
		fi.Mod |= fs.ModeSocket
	}
	if st.Mode&unix.S_ISGID != 0 {
		fi.Mod |= fs.ModeSetgid
	}
	if st.Mode&unix.S_ISUID != 0 {
		fi.Mod |= fs.ModeSetuid
	}
	if st.Mode&unix.S_ISVTX != 0 {
		fi.Mod |= fs.ModeSticky
	}
	return fi, nil
}

// OpenatDir opens the directory nm relative to dirfd and returns its
// fd (for further *at calls against its children); callers wrap it
// with os.NewFile to use ReadDir.
func OpenatDir(dirfd int, nm string) (int, error) {
	return unix.Openat(dirfd, nm, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
}

func unixTs(ts unix.Timespec) time.Time {
	return time.Unix(ts.Sec, ts.Nsec)
}
