// metaupdate.go - apply recorded metadata (xattr, uid/gid, mode, times) to a file
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

// updater applies one facet of fi's metadata to dest.
type updater func(dest string, fi *Info) error

// timeUpdaters is the chain used by UpdateTimes: it only ever touches
// mtime/atime, never xattr/uid/gid/mode. This is what a "-timefix"
// repair runs against a target entry.
var timeUpdaters = []updater{
	clonetimes,
}

// fullUpdaters applies every facet of fi's recorded metadata to dest:
// xattr, ownership, permission bits and finally timestamps. The order
// matters: xattr and chown can reset setuid/setgid bits on some
// filesystems, so mode is applied after them, and times are applied
// last since everything above can bump mtime/ctime as a side effect.
var fullUpdaters = []updater{
	clonexattr,
	chown,
	chmod,
	clonetimes,
}

// UpdateTimes sets dest's atime/mtime to match fi. This is the
// minimal metadata repair used by a time-correction pass: it never
// touches ownership, mode or xattr.
func UpdateTimes(dest string, fi *Info) error {
	return applyUpdaters(dest, fi, timeUpdaters)
}

// UpdateMetadata applies fi's xattr, ownership, mode and timestamps
// to dest, in that order.
func UpdateMetadata(dest string, fi *Info) error {
	return applyUpdaters(dest, fi, fullUpdaters)
}

func applyUpdaters(dest string, fi *Info, chain []updater) error {
	for _, fn := range chain {
		if err := fn(dest, fi); err != nil {
			return err
		}
	}
	return nil
}
