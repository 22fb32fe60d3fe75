// checksum.go - CRC-32 file checksumming secondary mode
//
// Grounded on fio/safefile_test.go's fileCksum helper: open the file,
// hand its fd to mmap.Reader (github.com/opencoff/go-mmap) and feed
// each mapped chunk to a running hash. That helper uses sha256; this
// package swaps in hash/crc32 because original_source/src/pwalk.c's
// "+cksum" secondary mode computes a CRC-32 (the teacher has no CRC
// library in its dependency set and no example repo in the pack
// supplies one either, so stdlib's hash/crc32 is used here -- see
// DESIGN.md). The mmap-backed read path is the part worth keeping from
// the teacher: it avoids copying the whole file through a userspace
// buffer for files in the multi-GB range that SPEC_FULL.md's scale
// target implies.
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

package checksum

import (
	"hash/crc32"
	"io"
	"os"

	"github.com/opencoff/go-mmap"

	"github.com/opencoff/pwalk/fio"
)

// Result is the outcome of a checksum pass: CRC32 over either the whole
// file or just its first n bytes (see Prefix), whichever was requested.
type Result struct {
	CRC32       uint32
	BytesRead   int64
	FullFile    bool
}

// File computes the CRC-32 of the whole file at nm (spec.md §4.F "+cksum").
func File(nm string) (*Result, error) {
	return read(nm, 0)
}

// Prefix computes the CRC-32 over at most n bytes at the start of the
// file at nm, the small-prefix-read load generator secondary mode
// (SPEC_FULL.md §6).
func Prefix(nm string, n int) (*Result, error) {
	return read(nm, n)
}

// read drives the shared crc32+mmap path; limit == 0 means "whole file".
func read(nm string, limit int) (*Result, error) {
	fd, err := os.Open(nm)
	if err != nil {
		return nil, &fio.Error{Op: "checksum", Src: nm, Err: err}
	}
	defer fd.Close()

	h := crc32.NewIEEE()
	var nread int64
	full := limit == 0

	n, err := mmap.Reader(fd, func(b []byte) error {
		if !full {
			remain := limit - int(nread)
			if remain <= 0 {
				return io.EOF
			}
			if len(b) > remain {
				b = b[:remain]
			}
		}
		nn, werr := h.Write(b)
		nread += int64(nn)
		return werr
	})
	if err != nil && err != io.EOF {
		return nil, &fio.Error{Op: "checksum", Src: nm, Err: err}
	}
	if full {
		nread = n
	}

	return &Result{
		CRC32:     h.Sum32(),
		BytesRead: nread,
		FullFile:  full,
	}, nil
}
