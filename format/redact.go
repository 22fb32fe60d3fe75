// redact.go - redacted-path secondary output writer (spec.md §4.C
// "Redaction")
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

import "fmt"

// RedactFormatter writes one "<redacted-path>\n" line per entry to
// "<outdir>/worker-<id>.redact", alongside whichever primary-mode
// formatter is otherwise active (redaction is a secondary output, spec.md
// §1, never a primary mode on its own).
type RedactFormatter struct {
	lazyWriter
}

// NewRedact builds a RedactFormatter writing lazily to
// "<outdir>/worker-<id>.redact".
func NewRedact(outdir string, id int) *RedactFormatter {
	return &RedactFormatter{lazyWriter{outdir: outdir, id: id, ext: "redact"}}
}

func (f *RedactFormatter) Ext() string { return "redact" }

// EmitPath writes one redacted path line.
func (f *RedactFormatter) EmitPath(redacted string) error {
	w, err := f.writer()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", redacted)
	return err
}
