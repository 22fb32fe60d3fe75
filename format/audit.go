// audit.go - ModeAudit formatter
//
// Grounded on original_source/src/pwalk_audit.h's one-CSV-line-per-file
// shape, emitted here as (uid, size, lock status, retention date, path); see the audit package
// for how the lock status column itself is derived.
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

	"github.com/opencoff/pwalk/audit"
	"github.com/opencoff/pwalk/fio"
)

// AuditFormatter emits one CSV-shaped line per audit.Report. It does
// not implement the generic Formatter.Emit path meaningfully (audit
// mode drives output from EmitReport, called with the derived lock
// state rather than a bare fio.Info); Emit is kept only to satisfy the
// interface for uniform wiring through format.New in walk.Walk.
type AuditFormatter struct {
	lazyWriter
}

// NewAudit builds an AuditFormatter writing lazily to
// "<outdir>/worker-<id>.audit".
func NewAudit(outdir string, id int) *AuditFormatter {
	return &AuditFormatter{lazyWriter{outdir: outdir, id: id, ext: "audit"}}
}

func (f *AuditFormatter) Ext() string { return "audit" }

// Emit is a no-op: audit records are emitted via EmitReport, which
// carries the derived lock status alongside the entry.
func (f *AuditFormatter) Emit(relpath string, fi *fio.Info) error { return nil }

// EmitReport renders one audit.Report as a CSV-shaped line.
func (f *AuditFormatter) EmitReport(r *audit.Report) error {
	w, err := f.writer()
	if err != nil {
		return err
	}
	retention := ""
	if !r.RetentionDate.IsZero() {
		retention = r.RetentionDate.UTC().Format("2006-01-02T15:04:05Z")
	}
	_, err = fmt.Fprintf(w, "%d,%d,%c,%s,%s\n", r.Uid, r.Size, r.LockStatus, retention, r.Path)
	return err
}
