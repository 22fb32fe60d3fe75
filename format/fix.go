// fix.go - ModeTimeFix formatter
//
// Records which entries had their mtime/atime repaired to match the
// source. EmitBirthtimeSkipped exists for a birthtime outcome line, but
// the scanner's ModeTimeFix path does not repair birthtimes or call it.
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

// FixFormatter emits one line per repaired entry.
type FixFormatter struct {
	lazyWriter
}

// NewFix builds a FixFormatter writing lazily to
// "<outdir>/worker-<id>.fix".
func NewFix(outdir string, id int) *FixFormatter {
	return &FixFormatter{lazyWriter{outdir: outdir, id: id, ext: "fix"}}
}

func (f *FixFormatter) Ext() string { return "fix" }

func (f *FixFormatter) Emit(relpath string, fi *fio.Info) error {
	w, err := f.writer()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s: mtime -> %s atime -> %s\n",
		relpath, fi.Mtim.UTC().Format("2006-01-02T15:04:05Z"), fi.Atim.UTC().Format("2006-01-02T15:04:05Z"))
	return err
}

// EmitBirthtimeSkipped records an entry whose birthtime could not be
// repaired (fio.ErrBirthtimeUnsupported), so the summary can surface
// it instead of silently dropping it.
func (f *FixFormatter) EmitBirthtimeSkipped(relpath string) error {
	w, err := f.writer()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s: birthtime repair unsupported on this platform\n", relpath)
	return err
}
