// format.go - output formatter contract (spec.md §6, §1 "per-worker
// output formatters ... external collaborator")
//
// Grounded on fio.SafeFile for the writer (atomic create-then-rename,
// same as the teacher uses for any output file it produces) and on
// cmp.Difference's report-shape for the comparison record (see cmp.go
// in this package). A Formatter is stateless per call: the scanner
// hands it one fio.Info at a time and the Formatter decides how to
// render it, matching spec.md §4.C.g's "at-most-once per entry"
// contract for output.
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
	"io"
	"os"
	"path/filepath"

	"github.com/opencoff/pwalk/fio"
)

// Formatter is the per-worker output contract: one call per visited
// entry, plus lifecycle hooks for the lazily-created output file
// (spec.md §4.D "output handles ... created lazily on first use").
type Formatter interface {
	// Emit renders one entry. relpath is relative to the active
	// source root.
	Emit(relpath string, fi *fio.Info) error

	// Ext is the worker output file extension for this mode
	// (spec.md §6: worker-NNN.<ext>).
	Ext() string

	// Close flushes and closes the underlying writer, if one was
	// ever opened.
	Close() error
}

// Open creates "<outdir>/worker-<id>.<ext>" lazily-safe via
// fio.SafeFile, matching spec.md §6's naming scheme.
func Open(outdir string, id int, ext string) (*fio.SafeFile, error) {
	nm := filepath.Join(outdir, fmt.Sprintf("worker-%03d.%s", id, ext))
	return fio.NewSafeFile(nm, fio.OPT_OVERWRITE, os.O_WRONLY, 0644)
}

// lazyWriter defers file creation until the first Emit call, so a
// worker that never visits a matching entry never creates an empty
// output file.
type lazyWriter struct {
	outdir string
	id     int
	ext    string
	sf     *fio.SafeFile
}

func (l *lazyWriter) writer() (io.Writer, error) {
	if l.sf != nil {
		return l.sf, nil
	}
	sf, err := Open(l.outdir, l.id, l.ext)
	if err != nil {
		return nil, err
	}
	l.sf = sf
	return sf, nil
}

func (l *lazyWriter) Close() error {
	if l.sf == nil {
		return nil
	}
	return l.sf.Close()
}
