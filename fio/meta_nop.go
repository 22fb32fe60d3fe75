// meta_nop.go -- metadata updates for unsupported systems
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

//go:build !unix

package fio

import (
	"fmt"
)

func chown(dest string, fi *Info) error {
	return &Error{"chown", fi.Path(), dest, fmt.Errorf("not supported")}
}

func chmod(dest string, fi *Info) error {
	return &Error{"chmod", fi.Path(), dest, fmt.Errorf("not supported")}
}

func clonetimes(dest string, fi *Info) error {
	return &Error{"clonetimes", fi.Path(), dest, fmt.Errorf("not supported")}
}

func clonelink(dest string, fi *Info) error {
	return &Error{"clonelink", fi.Path(), dest, fmt.Errorf("not supported")}
}

func clonexattr(dest string, fi *Info) error {
	return &Error{"clonexattr", fi.Path(), dest, fmt.Errorf("not supported")}
}

func lclonexattr(dest string, fi *Info) error {
	return &Error{"lclonexattr", fi.Path(), dest, fmt.Errorf("not supported")}
}
