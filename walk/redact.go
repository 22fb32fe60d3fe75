// redact.go - redacted-path secondary output (spec.md §4.C "Redaction")
//
// Each path component is replaced by the hex form of its inode id.
// Intermediate components need their own metadata call (relative to
// the source root), so a redacted path's cost scales with its depth.
// Redactor caches one path-component's inode lookup across every
// worker via fio.FioMap (github.com/puzpuzpuz/xsync/v3-backed,
// fio/fiomap.go), since sibling subtrees under a shared parent
// frequently re-resolve the same ancestor components.
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

package walk

import (
	"fmt"
	"path"
	"strings"

	"github.com/opencoff/pwalk/fio"
)

// Redactor resolves the hex-inode form of every component of a
// relative path, sharing a lookup cache across every worker.
type Redactor struct {
	root  *Root
	cache *fio.FioMap
}

// NewRedactor builds a Redactor rooted at root, sharing cache (pass the
// same *fio.FioMap to every worker's Redactor so the lookup cache is
// shared process-wide).
func NewRedactor(root *Root, cache *fio.FioMap) *Redactor {
	return &Redactor{root: root, cache: cache}
}

// Path renders relpath with every component replaced by its inode id in
// hex, separated by "/". The root itself (".") redacts to ".". A
// component whose inode can't be resolved contributes "0" and the
// caller is expected to count a warning (spec.md: "lookups that fail
// contribute a zero and a warning").
func (r *Redactor) Path(relpath string, warnOnFailure func(prefix string)) string {
	if relpath == "" || relpath == "." {
		return "."
	}

	parts := strings.Split(relpath, "/")
	out := make([]string, len(parts))
	prefix := ""
	for i, p := range parts {
		if prefix == "" {
			prefix = p
		} else {
			prefix = prefix + "/" + p
		}
		ino, ok := r.inode(prefix)
		if !ok {
			out[i] = "0"
			if warnOnFailure != nil {
				warnOnFailure(prefix)
			}
			continue
		}
		out[i] = fmt.Sprintf("%x", ino)
	}
	return strings.Join(out, "/")
}

func (r *Redactor) inode(prefix string) (uint64, bool) {
	if fi, ok := r.cache.Load(prefix); ok {
		return fi.Ino, true
	}
	abs := path.Join(r.root.Path, prefix)
	fi, err := fio.Lstat(abs)
	if err != nil {
		return 0, false
	}
	r.cache.Store(prefix, fi)
	return fi.Ino, true
}
