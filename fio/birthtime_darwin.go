//go:build darwin

package fio

import (
	"time"

	"golang.org/x/sys/unix"
)

// SetBirthtime sets dest's atime and mtime to bt via utimensat. Darwin
// lowers st_birthtime when mtime is set earlier than it, so this moves
// the birthtime back to bt only when bt precedes the current birthtime;
// it does not call setattrlist.
func SetBirthtime(dest string, bt time.Time) error {
	ts := []unix.Timespec{
		unix.NsecToTimespec(bt.UnixNano()),
		unix.NsecToTimespec(bt.UnixNano()),
	}
	if err := unix.UtimesNanoAt(unix.AT_FDCWD, dest, ts, 0); err != nil {
		return &Error{Op: "setbirthtime", Dst: dest, Err: err}
	}
	return nil
}
