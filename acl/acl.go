// acl.go - POSIX ACL extraction, comparison and stripping
//
// Grounded on fio/xattr.go (github.com/pkg/xattr), which this package
// is layered directly on top of: a POSIX ACL is stored by the kernel as
// the "system.posix_acl_access" / "system.posix_acl_default" extended
// attributes, so fetching/replacing/removing an ACL is fetching/
// replacing/removing those two keys. Get/Set/Strip treat an ACL as an
// opaque blob and Equal compares bytes; POSIXToNFSv4 is the one place
// that decodes the access blob into individual ACEs, for extraction.
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

package acl

import (
	"github.com/pkg/xattr"

	"github.com/opencoff/pwalk/chex"
	"github.com/opencoff/pwalk/fio"
)

// Keys used by Linux/FreeBSD for POSIX ACLs.
const (
	KeyAccess  = "system.posix_acl_access"
	KeyDefault = "system.posix_acl_default"
)

// ACL is the pair of ACL blobs a filesystem object may carry: Access
// applies to the object itself, Default only applies to directories and
// sets the ACL newly-created children inherit.
type ACL struct {
	Access  []byte
	Default []byte
}

// Present reports whether either blob is non-nil, i.e. the object
// carries an explicit ACL beyond the traditional rwx permission bits.
func (a *ACL) Present() bool {
	return a != nil && (len(a.Access) > 0 || len(a.Default) > 0)
}

// Equal reports whether two ACLs are byte-identical. It is a plain
// blob comparison; ACEs are not decoded. ModeCompare does not call it.
func (a *ACL) Equal(b *ACL) bool {
	if a == nil || b == nil {
		return a == b
	}
	return bytesEqual(a.Access, b.Access) && bytesEqual(a.Default, b.Default)
}

func bytesEqual(x, y []byte) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// Get fetches the ACL of nm, following symlinks. A missing key is not
// an error: the returned ACL simply omits that half.
func Get(nm string) (*ACL, error) {
	return get(nm, xattr.Get)
}

// LGet fetches the ACL of nm without following a trailing symlink.
func LGet(nm string) (*ACL, error) {
	return get(nm, xattr.LGet)
}

func get(nm string, getfn func(nm, key string) ([]byte, error)) (*ACL, error) {
	a := &ACL{}
	if b, err := getfn(nm, KeyAccess); err == nil {
		a.Access = b
	} else if !isNotExist(err) {
		return nil, &fio.Error{Op: "acl.get", Src: nm, Err: err}
	}
	if b, err := getfn(nm, KeyDefault); err == nil {
		a.Default = b
	} else if !isNotExist(err) {
		return nil, &fio.Error{Op: "acl.get", Src: nm, Err: err}
	}
	return a, nil
}

// Set writes a's blobs onto nm, skipping any half that is empty.
func Set(nm string, a *ACL) error {
	return set(nm, a, xattr.Set)
}

// LSet writes a's blobs onto nm without following a trailing symlink.
func LSet(nm string, a *ACL) error {
	return set(nm, a, xattr.LSet)
}

func set(nm string, a *ACL, setfn func(nm, key string, val []byte) error) error {
	if len(a.Access) > 0 {
		if err := setfn(nm, KeyAccess, a.Access); err != nil {
			return &fio.Error{Op: "acl.set", Dst: nm, Err: err}
		}
	}
	if len(a.Default) > 0 {
		if err := setfn(nm, KeyDefault, a.Default); err != nil {
			return &fio.Error{Op: "acl.set", Dst: nm, Err: err}
		}
	}
	return nil
}

// Strip removes any ACL present on nm. Used by the ACL-strip secondary
// mode, which runs alongside any primary mode (SPEC_FULL.md §4.1).
func Strip(nm string) error {
	for _, k := range []string{KeyAccess, KeyDefault} {
		if err := xattr.Remove(nm, k); err != nil && !isNotExist(err) {
			return &fio.Error{Op: "acl.strip", Dst: nm, Err: err}
		}
	}
	return nil
}

// posixTag values from the Linux posix_acl_xattr wire format
// (include/uapi/linux/posix_acl_xattr.h): ACL_USER_OBJ, ACL_USER,
// ACL_GROUP_OBJ, ACL_GROUP, ACL_MASK, ACL_OTHER.
const (
	posixTagUserObj  = 0x01
	posixTagUser     = 0x02
	posixTagGroupObj = 0x04
	posixTagGroup    = 0x08
	posixTagMask     = 0x10
	posixTagOther    = 0x20
)

// ACE4 is a shape-only stand-in for an RFC 7530 NFSv4 access control
// entry: a principal label plus an ACE4_* mask/flags pair, renderable
// through chex.Encode. It exists so the ACL extraction/transformation
// secondary mode has a concrete output type (spec.md §1 names a full
// POSIX->NFSv4 ACE compiler as out of scope; this is not one).
type ACE4 struct {
	Principal string
	Mask      uint32
	Flags     uint32
}

// Chex renders one ACE4 the way pwalk's "+xacls=chex" output mode did.
func (e ACE4) Chex() string {
	return e.Principal + " " + chex.Encode(e.Mask, e.Flags)
}

// POSIXToNFSv4 decodes the raw "system.posix_acl_access"-style blob in
// a.Access into a best-effort ACE4 slice: each POSIX ACL entry becomes
// one ACE4 with rwx expanded into the nearest ACE4_* mask bits and no
// attempt at inheritance-flag or deny-ACE synthesis. This is a shape-only
// pass-through, not a correct translator (see package doc comment).
func POSIXToNFSv4(a *ACL) []ACE4 {
	entries := decodePosixACL(a.Access)
	out := make([]ACE4, 0, len(entries))
	for _, e := range entries {
		out = append(out, ACE4{
			Principal: e.principal(),
			Mask:      posixPermToACE4Mask(e.perm),
		})
	}
	return out
}

type posixACLEntry struct {
	tag  uint16
	perm uint16
	id   uint32
}

func (e posixACLEntry) principal() string {
	switch e.tag {
	case posixTagUserObj:
		return "OWNER@"
	case posixTagGroupObj:
		return "GROUP@"
	case posixTagOther:
		return "EVERYONE@"
	case posixTagMask:
		return "MASK"
	case posixTagUser:
		return "user:" + itoa(e.id)
	case posixTagGroup:
		return "group:" + itoa(e.id)
	default:
		return "?"
	}
}

// decodePosixACL parses the posix_acl_xattr wire format: a 4-byte
// version header followed by a run of 8-byte {tag uint16, perm uint16,
// id uint32} entries, all little-endian. A short or malformed blob
// yields no entries rather than an error -- this is a best-effort
// rendering aid, not a validator.
func decodePosixACL(b []byte) []posixACLEntry {
	const hdrLen = 4
	const entLen = 8
	if len(b) < hdrLen {
		return nil
	}
	b = b[hdrLen:]
	var out []posixACLEntry
	for len(b) >= entLen {
		tag := le16(b[0:2])
		perm := le16(b[2:4])
		id := le32(b[4:8])
		out = append(out, posixACLEntry{tag: tag, perm: perm, id: id})
		b = b[entLen:]
	}
	return out
}

func le16(b []byte) uint16 { return uint16(b[0]) | uint16(b[1])<<8 }
func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func itoa(id uint32) string {
	if id == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for id > 0 {
		i--
		buf[i] = byte('0' + id%10)
		id /= 10
	}
	return string(buf[i:])
}

// posixPermToACE4Mask expands a POSIX rwx triple (low 3 bits of perm)
// into the nearest ACE4_* mask bits: read->READ_DATA|READ_ATTRIBUTES,
// write->WRITE_DATA|APPEND_DATA, execute->EXECUTE.
func posixPermToACE4Mask(perm uint16) uint32 {
	var m uint32
	if perm&0x4 != 0 {
		m |= chex.MaskReadData | chex.MaskReadAttrs
	}
	if perm&0x2 != 0 {
		m |= chex.MaskWriteData | chex.MaskAppendData
	}
	if perm&0x1 != 0 {
		m |= chex.MaskExecute
	}
	return m
}

func isNotExist(err error) bool {
	if err == nil {
		return false
	}
	// github.com/pkg/xattr wraps syscall errors as *xattr.Error whose
	// Err field is the underlying errno; ENODATA/ENOATTR both mean
	// "no such attribute" and are not failures here.
	type errnoer interface{ Unwrap() error }
	if e, ok := err.(errnoer); ok {
		return isNotExist(e.Unwrap())
	}
	return isENODATA(err)
}
