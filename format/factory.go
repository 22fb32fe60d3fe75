// factory.go - mode -> Formatter wiring
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

// New builds the Formatter for the named mode extension (the same
// string config.Mode.Ext() returns), writing lazily to
// "<outdir>/worker-<id>.<ext>".
func New(ext string, outdir string, id int) Formatter {
	switch ext {
	case "xml":
		return NewXML(outdir, id)
	case "cmp":
		return NewCmp(outdir, id)
	case "fix":
		return NewFix(outdir, id)
	case "rm":
		return NewRM(outdir, id)
	case "csv":
		return NewCSV(outdir, id)
	case "audit":
		return NewAudit(outdir, id)
	default:
		return NewLS(outdir, id)
	}
}
