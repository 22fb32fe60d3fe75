// fiomap.go -- a map of names to Info
//
// (c) 2024 Sudhi Herle <sudhi@herle.net>
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

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// FioMap is a concurrency safe map of relative path name and the
// corresponding Stat/Lstat info. walk/redact.go shares one instance of
// this across every worker as its inode-lookup cache.
type FioMap = xsync.MapOf[string, *Info]

func NewFioMap() *FioMap {
	return xsync.NewMapOf[string, *Info]()
}
