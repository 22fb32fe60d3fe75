//go:build linux

package acl

import (
	"errors"
	"syscall"
)

// isENODATA matches the Linux "no such attribute" errno.
func isENODATA(err error) bool {
	return errors.Is(err, syscall.ENODATA)
}
