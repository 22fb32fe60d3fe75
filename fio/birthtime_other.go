//go:build !darwin

package fio

import "time"

// SetBirthtime is unsupported outside Darwin: Linux has no birthtime
// setter exposed to userspace (statx can read btime but nothing writes
// it), and FreeBSD's utimensat does not address st_birthtime either.
func SetBirthtime(dest string, bt time.Time) error {
	return ErrBirthtimeUnsupported
}
