// ls.go - "ls -l" style listing formatter (ModeList, spec.md §1/§6)
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

package format

import (
	"fmt"

	"github.com/opencoff/pwalk/fio"
)

// LSFormatter writes one line per entry in `ls -l`-ish form: mode,
// nlink, uid, gid, size, mtime, path.
type LSFormatter struct {
	lazyWriter
}

// NewLS builds an LSFormatter writing lazily to
// "<outdir>/worker-<id>.ls".
func NewLS(outdir string, id int) *LSFormatter {
	return &LSFormatter{lazyWriter{outdir: outdir, id: id, ext: "ls"}}
}

func (f *LSFormatter) Ext() string { return "ls" }

func (f *LSFormatter) Emit(relpath string, fi *fio.Info) error {
	w, err := f.writer()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s %4d %6d %6d %12d %s %s\n",
		fi.Mode().String(), fi.Nlink, fi.Uid, fi.Gid, fi.Size(),
		fi.ModTime().UTC().Format("2006-01-02T15:04:05Z"), relpath)
	return err
}
