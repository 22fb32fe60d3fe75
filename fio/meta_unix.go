// meta_unix.go -- metadata update helpers for unixish platforms
//
// (c) 2021 Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

//go:build unix

package fio

import (
	"os"
)

// chown sets the owner/group of dest from fi
func chown(dest string, fi *Info) error {
	if err := os.Lchown(dest, int(fi.Uid), int(fi.Gid)); err != nil {
		return &Error{"chown", fi.Path(), dest, err}
	}
	return nil
}

// chmod sets the mode bits of dest from fi
func chmod(dest string, fi *Info) error {
	if err := os.Chmod(dest, fi.Mode()); err != nil {
		return &Error{"chmod", fi.Path(), dest, err}
	}
	return nil
}

// clonetimes applies fi's atime/mtime to dest via utimensat(2). This is
// the part of a "-timefix" repair that actually touches the target file;
// the scanner only ever computes what the new times should be.
func clonetimes(dest string, fi *Info) error {
	if err := os.Chtimes(dest, fi.Atim, fi.Mtim); err != nil {
		return &Error{"clonetimes", fi.Path(), dest, err}
	}
	return nil
}

// clonelink recreates a symlink at dest pointing at the same target as
// the symlink described by fi.
func clonelink(dest string, fi *Info) error {
	targ, err := os.Readlink(fi.Path())
	if err != nil {
		return &Error{"readlink", fi.Path(), dest, err}
	}
	if err = os.Symlink(targ, dest); err != nil {
		return &Error{"symlink", fi.Path(), dest, err}
	}
	return nil
}

// clonexattr copies the extended attributes recorded in fi onto dest.
func clonexattr(dest string, fi *Info) error {
	if err := ReplaceXattr(dest, fi.Xattr); err != nil {
		return &Error{"clonexattr", fi.Path(), dest, err}
	}
	return nil
}

// lclonexattr is like clonexattr but operates on the symlink itself.
func lclonexattr(dest string, fi *Info) error {
	x, err := LgetXattr(fi.Path())
	if err != nil {
		return &Error{"lgetxattr", fi.Path(), dest, err}
	}
	if err := LreplaceXattr(dest, x); err != nil {
		return &Error{"lreplacexattr", fi.Path(), dest, err}
	}
	return nil
}
