// escape.go - ASCII-escape codec for path bytes carried on the FIFO wire
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

package fifo

import (
	"fmt"
	"strings"
)

// controlLetter maps the control bytes 0x07..0x0D to their familiar
// single-letter escape, in the same order pwalk.c's fifo_push() emits them.
var controlLetter = map[byte]byte{
	0x07: 'a',
	0x08: 'b',
	0x09: 't',
	0x0A: 'n',
	0x0B: 'v',
	0x0C: 'f',
	0x0D: 'r',
}

var letterControl = func() map[byte]byte {
	m := make(map[byte]byte, len(controlLetter))
	for k, v := range controlLetter {
		m[v] = k
	}
	return m
}()

// needsEscape reports whether b must be preceded by a backslash even
// though it is otherwise a printable graphic byte.
func needsEscape(b byte) bool {
	switch b {
	case '\'', '"', '?', '\\':
		return true
	}
	return false
}

// isPrintable reports whether b is a printable graphic ASCII byte
// (the range pwalk.c treats as safe to emit verbatim).
func isPrintable(b byte) bool {
	return b >= 0x20 && b < 0x7F
}

// Encode renders path as a single escaped line, without the trailing
// newline the FIFO storage layer appends. Every byte round-trips:
// printable bytes pass through unescaped (except the quote/backslash/
// question-mark set), 0x07..0x0D map to their familiar letter escape,
// and everything else becomes \xHH.
func Encode(path string) string {
	var b strings.Builder
	b.Grow(len(path) + 8)

	for i := 0; i < len(path); i++ {
		c := path[i]
		switch {
		case needsEscape(c):
			b.WriteByte('\\')
			b.WriteByte(c)
		case c >= 0x07 && c <= 0x0D:
			b.WriteByte('\\')
			b.WriteByte(controlLetter[c])
		case isPrintable(c):
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "\\x%02x", c)
		}
	}
	return b.String()
}

// Decode is the exact inverse of Encode: \xHH consumes two hex digits,
// \a..\r map back to their control byte, and any other \X emits the
// literal byte X (this also covers the escaped quote/backslash/?).
func Decode(line string) (string, error) {
	var b strings.Builder
	b.Grow(len(line))

	for i := 0; i < len(line); i++ {
		c := line[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}

		i++
		if i >= len(line) {
			return "", fmt.Errorf("fifo: decode: trailing backslash")
		}

		e := line[i]
		switch {
		case e == 'x':
			if i+2 >= len(line) {
				return "", fmt.Errorf("fifo: decode: truncated \\x escape")
			}
			v, err := hexVal(line[i+1], line[i+2])
			if err != nil {
				return "", err
			}
			b.WriteByte(v)
			i += 2
		default:
			if ctrl, ok := letterControl[e]; ok {
				b.WriteByte(ctrl)
			} else {
				b.WriteByte(e)
			}
		}
	}
	return b.String(), nil
}

func hexVal(hi, lo byte) (byte, error) {
	h, err := hexDigit(hi)
	if err != nil {
		return 0, err
	}
	l, err := hexDigit(lo)
	if err != nil {
		return 0, err
	}
	return h<<4 | l, nil
}

func hexDigit(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	}
	return 0, fmt.Errorf("fifo: decode: bad hex digit %q", c)
}
