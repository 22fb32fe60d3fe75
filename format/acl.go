// acl.go - ACL extraction side-channel formatter (spec.md §4.1)
//
// Grounded on rm.go/redact.go's lazyWriter shape: one "<relpath>
// <principal> <chex>" line per extracted ACE, written lazily to
// "<outdir>/worker-<id>.acl".
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

// ACLFormatter emits one line per ACE rendered by acl.POSIXToNFSv4.
type ACLFormatter struct {
	lazyWriter
}

// NewACL builds an ACLFormatter writing lazily to
// "<outdir>/worker-<id>.acl".
func NewACL(outdir string, id int) *ACLFormatter {
	return &ACLFormatter{lazyWriter{outdir: outdir, id: id, ext: "acl"}}
}

func (f *ACLFormatter) Ext() string { return "acl" }

// EmitACE writes one rendered ACE for relpath. ACLFormatter has no use
// for the generic Emit(relpath, *fio.Info) path since an entry may
// carry zero or many ACEs; callers use EmitACE directly instead.
func (f *ACLFormatter) EmitACE(relpath, chex string) error {
	w, err := f.writer()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s %s\n", relpath, chex)
	return err
}
