// rm.go - ModeDelete formatter
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

// RMFormatter emits one line per deleted entry.
type RMFormatter struct {
	lazyWriter
}

// NewRM builds an RMFormatter writing lazily to
// "<outdir>/worker-<id>.rm".
func NewRM(outdir string, id int) *RMFormatter {
	return &RMFormatter{lazyWriter{outdir: outdir, id: id, ext: "rm"}}
}

func (f *RMFormatter) Ext() string { return "rm" }

func (f *RMFormatter) Emit(relpath string, fi *fio.Info) error {
	w, err := f.writer()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "removed %s (%d bytes)\n", relpath, fi.Size())
	return err
}
