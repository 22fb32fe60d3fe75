package walk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/opencoff/pwalk/config"
	"github.com/opencoff/pwalk/fio"
	"github.com/opencoff/pwalk/format"
	"github.com/opencoff/pwalk/stats"
)

type fakePusher struct {
	pushed []string
}

func (p *fakePusher) Push(path string) error {
	p.pushed = append(p.pushed, path)
	return nil
}

func mkTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "b.txt"), []byte("world"), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestScannerVisitsEntriesAndPushesSubdirs(t *testing.T) {
	dir := mkTree(t)

	r, err := NewResolver([]string{dir}, nil)
	if err != nil {
		t.Fatalf("NewResolver: %s", err)
	}
	defer r.Close()

	cfg := config.New(config.WithMode(config.ModeList), config.WithBlockUnit(512))
	out := format.NewLS(t.TempDir(), 0)
	defer out.Close()

	var warned []string
	pusher := &fakePusher{}
	ws := stats.NewWorkerStats(nil)

	sc := NewScanner(0, cfg, r, pusher, ws, out, func(f string, args ...interface{}) {
		warned = append(warned, f)
	}, nil, nil, nil)

	sc.Scan(".")

	if len(pusher.pushed) != 1 || pusher.pushed[0] != "sub" {
		t.Fatalf("exp [sub] pushed, saw %v", pusher.pushed)
	}
	if ws.NFiles != 1 {
		t.Fatalf("exp 1 file at root, saw %d", ws.NFiles)
	}
	if ws.NDirs != 1 {
		t.Fatalf("exp 1 dir at root, saw %d", ws.NDirs)
	}
	if ws.BytesNominal != 5 {
		t.Fatalf("exp 5 nominal bytes (hello), saw %d", ws.BytesNominal)
	}
	if len(warned) != 0 {
		t.Fatalf("exp no warnings, saw %v", warned)
	}

	sc.Scan("sub")
	if ws.NFiles != 2 {
		t.Fatalf("exp 2 files total after scanning sub, saw %d", ws.NFiles)
	}
}

func TestScannerSelectorSuppressesEmitNotAccounting(t *testing.T) {
	dir := mkTree(t)

	r, err := NewResolver([]string{dir}, nil)
	if err != nil {
		t.Fatalf("NewResolver: %s", err)
	}
	defer r.Close()

	outdir := t.TempDir()
	cfg := config.New(
		config.WithMode(config.ModeList),
		config.WithBlockUnit(512),
		config.WithSelector(func(relpath string, fi *fio.Info) bool { return false }),
	)

	out := format.NewLS(outdir, 0)
	defer out.Close()
	pusher := &fakePusher{}
	ws := stats.NewWorkerStats(nil)

	sc := NewScanner(0, cfg, r, pusher, ws, out, func(string, ...interface{}) {}, nil, nil, nil)
	sc.Scan(".")

	if ws.NFiles != 1 {
		t.Fatalf("exp selector to still count the file, saw %d", ws.NFiles)
	}

	entries, err := os.ReadDir(outdir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("exp no worker output file since selector suppressed every emit, saw %v", entries)
	}
}
