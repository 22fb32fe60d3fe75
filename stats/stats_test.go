package stats

import (
	"math"
	"testing"
)

func TestFold(t *testing.T) {
	ws := NewWorkerStats(nil)

	ds1 := DirStats{NDirs: 1, NFiles: 2, BytesNominal: 7, ZeroFiles: 1}
	ds2 := DirStats{NDirs: 1, NFiles: 1, BytesNominal: 100, HardLinkFiles: 1, HardLinkExtra: 2}

	ws.Fold(&ds1)
	ws.Fold(&ds2)

	if ws.NDirs != 2 {
		t.Fatalf("ndirs: exp 2, saw %d", ws.NDirs)
	}
	if ws.NFiles != 3 {
		t.Fatalf("nfiles: exp 3, saw %d", ws.NFiles)
	}
	if ws.BytesNominal != 107 {
		t.Fatalf("bytes: exp 107, saw %d", ws.BytesNominal)
	}
	if ws.HardLinkExtra != 2 {
		t.Fatalf("hardlinkextra: exp 2, saw %d", ws.HardLinkExtra)
	}
}

func TestSum(t *testing.T) {
	w1 := NewWorkerStats(nil)
	w1.Fold(&DirStats{NDirs: 1, NFiles: 5})
	w1.MaxInodeSeen = 100

	w2 := NewWorkerStats(nil)
	w2.Fold(&DirStats{NDirs: 2, NFiles: 3})
	w2.MaxInodeSeen = 500

	gs := Sum([]*WorkerStats{w1, w2})
	if gs.NDirs != 3 {
		t.Fatalf("ndirs: exp 3, saw %d", gs.NDirs)
	}
	if gs.NFiles != 8 {
		t.Fatalf("nfiles: exp 8, saw %d", gs.NFiles)
	}
	if gs.MaxInodeSeen != 500 {
		t.Fatalf("maxinode: exp 500, saw %d", gs.MaxInodeSeen)
	}
}

func TestTallyBuckets(t *testing.T) {
	thresholds := []int64{0, 1024, 65536, math.MaxInt64}
	tl := NewTally(thresholds)

	tl.Add(0, 0)       // bucket 0 (<=0)
	tl.Add(7, 8)       // bucket 1 (<=1024)
	tl.Add(1024, 1024) // bucket 1 (<=1024)
	tl.Add(1025, 2048) // bucket 2 (<=65536)
	tl.Add(1<<30, 0)   // overflow

	if tl.Count[0] != 1 {
		t.Fatalf("bucket0: exp 1, saw %d", tl.Count[0])
	}
	if tl.Count[1] != 2 {
		t.Fatalf("bucket1: exp 2, saw %d", tl.Count[1])
	}
	if tl.Count[2] != 1 {
		t.Fatalf("bucket2: exp 1, saw %d", tl.Count[2])
	}
	if tl.Count[3] != 1 {
		t.Fatalf("overflow: exp 1, saw %d", tl.Count[3])
	}
}

func TestTallyMerge(t *testing.T) {
	thresholds := []int64{1024, math.MaxInt64}
	a := NewTally(thresholds)
	b := NewTally(thresholds)

	a.Add(10, 10)
	b.Add(20, 20)
	b.Add(2000, 2000)

	a.Merge(b)
	if a.Count[0] != 2 {
		t.Fatalf("bucket0: exp 2, saw %d", a.Count[0])
	}
	if a.Count[1] != 1 {
		t.Fatalf("bucket1: exp 1, saw %d", a.Count[1])
	}
}
