// tally.go - fixed-width file-size bucket histogram (spec.md §3, §4.F)
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

package stats

import "fmt"

// MaxBuckets mirrors TALLY_BUCKETS_MAX in original_source/src/pwalk.h.
const MaxBuckets = 64

// Tally is an ordered list of size thresholds plus one running
// {count, size, allocated} accumulator per threshold. Thresholds must
// be monotonic non-decreasing; the last entry is the overflow bucket
// and every file larger than all prior thresholds lands there.
type Tally struct {
	Thresholds []int64
	Count      []uint64
	Size       []int64
	Allocated  []int64
}

// NewTally builds a Tally over thresholds, which must already be sorted
// non-decreasing; the caller is expected to have appended an overflow
// sentinel (e.g. math.MaxInt64) as the last element.
func NewTally(thresholds []int64) *Tally {
	n := len(thresholds)
	return &Tally{
		Thresholds: thresholds,
		Count:      make([]uint64, n),
		Size:       make([]int64, n),
		Allocated:  make([]int64, n),
	}
}

// Add finds the smallest bucket whose threshold >= size (or the final
// overflow bucket) and increments its count, adds size to its size
// total, and adds allocated to its allocated total.
func (t *Tally) Add(size, allocated int64) {
	idx := len(t.Thresholds) - 1
	for i, th := range t.Thresholds {
		if size <= th {
			idx = i
			break
		}
	}
	t.Count[idx]++
	t.Size[idx] += size
	t.Allocated[idx] += allocated
}

// Merge folds another Tally (built over the same thresholds) into t.
func (t *Tally) Merge(o *Tally) {
	for i := range t.Count {
		if i >= len(o.Count) {
			break
		}
		t.Count[i] += o.Count[i]
		t.Size[i] += o.Size[i]
		t.Allocated[i] += o.Allocated[i]
	}
}

// String renders a short human-readable table, one line per non-empty
// bucket.
func (t *Tally) String() string {
	s := ""
	for i, th := range t.Thresholds {
		if t.Count[i] == 0 {
			continue
		}
		label := fmt.Sprintf("<=%d", th)
		if i == len(t.Thresholds)-1 {
			label = "overflow"
		}
		s += fmt.Sprintf("%-12s %10d files %16d bytes %16d allocated\n",
			label, t.Count[i], t.Size[i], t.Allocated[i])
	}
	return s
}
