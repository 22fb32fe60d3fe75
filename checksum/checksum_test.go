package checksum

import (
	"hash/crc32"
	"os"
	"path/filepath"
	"testing"
)

func TestFileWholeFile(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "a")
	data := []byte("the quick brown fox jumps over the lazy dog")
	if err := os.WriteFile(fn, data, 0600); err != nil {
		t.Fatalf("write: %s", err)
	}

	r, err := File(fn)
	if err != nil {
		t.Fatalf("File: %s", err)
	}
	want := crc32.ChecksumIEEE(data)
	if r.CRC32 != want {
		t.Fatalf("crc32: exp %x, saw %x", want, r.CRC32)
	}
	if r.BytesRead != int64(len(data)) {
		t.Fatalf("bytesread: exp %d, saw %d", len(data), r.BytesRead)
	}
}

func TestPrefixTruncates(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "b")
	data := []byte("0123456789abcdef")
	if err := os.WriteFile(fn, data, 0600); err != nil {
		t.Fatalf("write: %s", err)
	}

	r, err := Prefix(fn, 4)
	if err != nil {
		t.Fatalf("Prefix: %s", err)
	}
	want := crc32.ChecksumIEEE(data[:4])
	if r.CRC32 != want {
		t.Fatalf("crc32: exp %x, saw %x", want, r.CRC32)
	}
	if r.FullFile {
		t.Fatalf("expected FullFile=false for a prefix read")
	}
}
