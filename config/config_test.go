package config

import (
	"math"
	"testing"
)

func TestDefaults(t *testing.T) {
	c := New()
	if c.Mode != ModeList {
		t.Fatalf("default mode: exp list, saw %s", c.Mode)
	}
	if c.BlockUnit != 512 {
		t.Fatalf("default block unit: exp 512, saw %d", c.BlockUnit)
	}
}

func TestOptions(t *testing.T) {
	c := New(
		WithMode(ModeCompare),
		WithWorkers(16),
		WithRoots([]string{"/a", "/b"}, []string{"/t"}),
		WithTally([]int64{1024, 65536}),
	)

	if c.Mode != ModeCompare {
		t.Fatalf("mode: exp cmp, saw %s", c.Mode)
	}
	if c.Workers != 16 {
		t.Fatalf("workers: exp 16, saw %d", c.Workers)
	}
	if len(c.SourceRoots) != 2 {
		t.Fatalf("source roots: exp 2, saw %d", len(c.SourceRoots))
	}
	if got := c.TallyThresholds[len(c.TallyThresholds)-1]; got != math.MaxInt64 {
		t.Fatalf("tally overflow sentinel missing: saw %d", got)
	}
}

func TestModeExt(t *testing.T) {
	cases := map[Mode]string{
		ModeList:    "ls",
		ModeXML:     "xml",
		ModeCompare: "cmp",
		ModeTimeFix: "fix",
		ModeDelete:  "rm",
		ModeAudit:   "audit",
	}
	for m, want := range cases {
		if got := m.Ext(); got != want {
			t.Fatalf("%s: exp ext %s, saw %s", m, want, got)
		}
	}
}
