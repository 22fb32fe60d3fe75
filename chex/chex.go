// chex.go - compact letter encoding of an RFC 7530 ACE4 mask/flags pair
//
// Grounded on original_source/src/chexcmp.c and the "+xacls=chex" output
// mode of original_source/src/pwalk.c: each recognized permission or
// flag bit gets a fixed column holding either its letter or a space, so
// two masks can be eyeballed side by side one column at a time. This
// package only implements the encoding; it does not attempt to be a
// correct POSIX<->NFSv4 ACL compiler (that translation is named
// out-of-scope in spec.md §1).
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

package chex

import "strings"

// ACE4 mask bits (RFC 7530 §6.2.1), in bit order; the column order in
// which chex strings print them is the maskBit table below.
const (
	MaskReadData       uint32 = 0x00000001 // R
	MaskWriteData      uint32 = 0x00000002 // W
	MaskAppendData     uint32 = 0x00000004 // A (append, distinct column from W)
	MaskReadNamedAttrs uint32 = 0x00000008 // r
	MaskWriteNamedAttrs uint32 = 0x00000010 // w
	MaskExecute        uint32 = 0x00000020 // X
	MaskDeleteChild    uint32 = 0x00000040 // D
	MaskReadAttrs      uint32 = 0x00000080 // a
	MaskWriteAttrs     uint32 = 0x00000100 // n
	MaskDelete         uint32 = 0x00010000 // d
	MaskReadACL        uint32 = 0x00020000 // c
	MaskWriteACL       uint32 = 0x00040000 // C
	MaskWriteOwner     uint32 = 0x00080000 // o
	MaskSynchronize    uint32 = 0x00100000 // y
)

// ACE4 flag bits.
const (
	FlagFileInherit    uint32 = 0x00000001 // f
	FlagDirInherit     uint32 = 0x00000002 // d
	FlagNoPropagate    uint32 = 0x00000004 // n
	FlagInheritOnly    uint32 = 0x00000008 // i
	FlagIdentifierGrp  uint32 = 0x00000040 // g
	FlagInherited      uint32 = 0x00000080 // I
)

// maskBit pairs a mask bit with the letter chexcmp.c prints for it, in
// display-column order.
var maskBit = []struct {
	bit    uint32
	letter byte
}{
	{MaskReadData, 'R'},
	{MaskWriteData, 'W'},
	{MaskAppendData, 'A'},
	{MaskExecute, 'X'},
	{MaskReadNamedAttrs, 'r'},
	{MaskWriteNamedAttrs, 'w'},
	{MaskReadAttrs, 'a'},
	{MaskWriteAttrs, 'n'},
	{MaskDeleteChild, 'D'},
	{MaskDelete, 'd'},
	{MaskReadACL, 'c'},
	{MaskWriteACL, 'C'},
	{MaskWriteOwner, 'o'},
	{MaskSynchronize, 'y'},
}

var flagBit = []struct {
	bit    uint32
	letter byte
}{
	{FlagFileInherit, 'f'},
	{FlagDirInherit, 'd'},
	{FlagNoPropagate, 'n'},
	{FlagInheritOnly, 'i'},
	{FlagIdentifierGrp, 'g'},
	{FlagInherited, 'I'},
}

// Decompose renders mask as a fixed-width run of letters/spaces, one
// column per recognized bit, mirroring chexcmp's bit table.
func Decompose(mask uint32) string {
	return decompose(mask, maskBit)
}

// DecomposeFlags renders flags the same way, over the flag bit table.
func DecomposeFlags(flags uint32) string {
	return decompose(flags, flagBit)
}

func decompose(v uint32, table []struct {
	bit    uint32
	letter byte
}) string {
	var b strings.Builder
	for _, e := range table {
		if v&e.bit != 0 {
			b.WriteByte(e.letter)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// Encode renders a (mask, flags) pair as "<mask-letters>/<flags-letters>",
// the form pwalk's "+xacls=chex" output mode used for each ACE.
func Encode(mask, flags uint32) string {
	return Decompose(mask) + "/" + DecomposeFlags(flags)
}

// Compare returns the set of mask-letter columns where a and b differ:
// a letter where a has the bit and b doesn't, '-' where b has it and a
// doesn't, and a space where they agree. Useful for eyeballing an ACL
// diff in ModeCompare's output.
func Compare(a, b uint32) string {
	var out strings.Builder
	for _, e := range maskBit {
		ina := a&e.bit != 0
		inb := b&e.bit != 0
		switch {
		case ina && inb:
			out.WriteByte(' ')
		case ina && !inb:
			out.WriteByte(e.letter)
		case !ina && inb:
			out.WriteByte('-')
		default:
			out.WriteByte(' ')
		}
	}
	return out.String()
}
