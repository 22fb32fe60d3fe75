package walk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/opencoff/pwalk/config"
)

type testLogger struct {
	t *testing.T
}

func (l *testLogger) Info(format string, args ...interface{}) { l.t.Logf("info: "+format, args...) }
func (l *testLogger) Warn(format string, args ...interface{}) { l.t.Logf("warn: "+format, args...) }

func mkWalkTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	dirs := []string{"a", "a/b", "c"}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0755); err != nil {
			t.Fatal(err)
		}
	}
	files := map[string]string{
		"top.txt":   "12345",
		"a/one.txt": "hello",
		"a/b/two.txt": "world!",
		"c/three.txt": "x",
	}
	for rel, content := range files {
		if err := os.WriteFile(filepath.Join(root, rel), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestWalkVisitsEveryEntry(t *testing.T) {
	root := mkWalkTree(t)
	outdir := t.TempDir()

	cfg := config.New(
		config.WithMode(config.ModeList),
		config.WithWorkers(3),
		config.WithRoots([]string{root}, nil),
		config.WithOutDir(outdir, "pwalk"),
		config.WithBlockUnit(512),
	)

	fifoPath := filepath.Join(outdir, "pwalk.fifo")
	res, err := Walk(cfg, []string{"."}, fifoPath, &testLogger{t})
	if err != nil {
		t.Fatalf("Walk: %s", err)
	}

	if res.Stats.NDirs != 3 {
		t.Fatalf("exp 3 dirs (a, a/b, c), saw %d", res.Stats.NDirs)
	}
	if res.Stats.NFiles != 4 {
		t.Fatalf("exp 4 files, saw %d", res.Stats.NFiles)
	}
	if res.Pushes != res.Pops {
		t.Fatalf("pushes/pops mismatch: %d/%d", res.Pushes, res.Pops)
	}

	entries, err := os.ReadDir(outdir)
	if err != nil {
		t.Fatal(err)
	}
	var sawOutput bool
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".ls" {
			sawOutput = true
		}
	}
	if !sawOutput {
		t.Fatalf("exp at least one worker-NNN.ls output file, saw %v", entries)
	}
}

func TestWalkSingleWorker(t *testing.T) {
	root := mkWalkTree(t)
	outdir := t.TempDir()

	cfg := config.New(
		config.WithMode(config.ModeList),
		config.WithWorkers(1),
		config.WithRoots([]string{root}, nil),
		config.WithOutDir(outdir, "pwalk"),
		config.WithBlockUnit(512),
	)

	fifoPath := filepath.Join(outdir, "pwalk.fifo")
	res, err := Walk(cfg, []string{"."}, fifoPath, &testLogger{t})
	if err != nil {
		t.Fatalf("Walk: %s", err)
	}
	if res.Stats.NDirs != 3 || res.Stats.NFiles != 4 {
		t.Fatalf("exp 3 dirs/4 files with a single worker, saw %d/%d", res.Stats.NDirs, res.Stats.NFiles)
	}
}
