package acl

import (
	"testing"
)

// encodePosixACL builds a minimal posix_acl_xattr blob for one entry,
// matching the wire format decodePosixACL expects.
func encodePosixACL(tag uint16, perm uint16, id uint32) []byte {
	b := make([]byte, 4+8)
	b[0] = 2 // version, little-endian uint32, value irrelevant to the decoder
	putLE16(b[4:6], tag)
	putLE16(b[6:8], perm)
	putLE32(b[8:12], id)
	return b
}

func putLE16(b []byte, v uint16) { b[0] = byte(v); b[1] = byte(v >> 8) }
func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func TestPOSIXToNFSv4OwnerRead(t *testing.T) {
	blob := encodePosixACL(posixTagUserObj, 0x4, 0) // r--
	a := &ACL{Access: blob}

	aces := POSIXToNFSv4(a)
	if len(aces) != 1 {
		t.Fatalf("exp 1 ACE, saw %d", len(aces))
	}
	if aces[0].Principal != "OWNER@" {
		t.Fatalf("exp OWNER@, saw %s", aces[0].Principal)
	}
	if aces[0].Mask == 0 {
		t.Fatalf("exp non-zero mask for read perm")
	}
	if aces[0].Chex() == "" {
		t.Fatalf("exp non-empty chex rendering")
	}
}

func TestPresent(t *testing.T) {
	var a *ACL
	if a.Present() {
		t.Fatalf("nil ACL should not be present")
	}

	a = &ACL{Access: []byte{1, 2, 3}}
	if !a.Present() {
		t.Fatalf("ACL with access blob should be present")
	}
}

func TestEqual(t *testing.T) {
	a := &ACL{Access: []byte("x"), Default: []byte("y")}
	b := &ACL{Access: []byte("x"), Default: []byte("y")}
	c := &ACL{Access: []byte("x")}

	if !a.Equal(b) {
		t.Fatalf("expected equal ACLs")
	}
	if a.Equal(c) {
		t.Fatalf("expected unequal ACLs (missing default)")
	}
}
