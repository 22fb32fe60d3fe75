package format

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/opencoff/pwalk/fio"
)

func mkInfo(path string, size int64, mtime time.Time) *fio.Info {
	fi := &fio.Info{Siz: size, Mtim: mtime}
	fi.SetPath(path)
	return fi
}

func TestLSFormatterLazyCreate(t *testing.T) {
	dir := t.TempDir()
	f := NewLS(dir, 1)

	fi := mkInfo("a/b", 7, time.Now())
	if err := f.Emit("a/b", fi); err != nil {
		t.Fatalf("emit: %s", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %s", err)
	}

	nm := filepath.Join(dir, "worker-001.ls")
	b, err := os.ReadFile(nm)
	if err != nil {
		t.Fatalf("read output: %s", err)
	}
	if !strings.Contains(string(b), "a/b") {
		t.Fatalf("output missing path: %s", b)
	}
}

func TestCompareMissing(t *testing.T) {
	src := mkInfo("x", 10, time.Now())
	if d := Compare(src, nil); d != DiffMissing {
		t.Fatalf("exp DiffMissing, saw %s", d)
	}
}

func TestCompareSizeDiffers(t *testing.T) {
	now := time.Now()
	src := mkInfo("x", 10, now)
	src.Mod = 0 // regular file bits
	dst := mkInfo("x", 20, now)
	dst.Mod = 0

	d := Compare(src, dst)
	if d&DiffSize == 0 {
		t.Fatalf("expected DiffSize in %s", d)
	}
}

func TestNoFormatterCreatedWithoutEmit(t *testing.T) {
	dir := t.TempDir()
	f := NewLS(dir, 2)
	if err := f.Close(); err != nil {
		t.Fatalf("close: %s", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "worker-002.ls")); !os.IsNotExist(err) {
		t.Fatalf("expected no output file to be created")
	}
}
