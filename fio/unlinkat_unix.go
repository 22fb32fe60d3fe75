//go:build unix

// unlinkat_unix.go - directory-relative unlink for ModeDelete
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

package fio

import "golang.org/x/sys/unix"

// UnlinkAt removes nm relative to the open directory dirfd.
func UnlinkAt(dirfd int, nm string) error {
	return unix.Unlinkat(dirfd, nm, 0)
}
