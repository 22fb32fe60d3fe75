// stats.go - three-tier statistics aggregation (directory -> worker -> global)
//
// Field names mirror PWALK_STATS_T in original_source/src/pwalk.h, renamed
// to Go conventions. Per spec.md §4.F: per-directory counters live only on
// the scanner's stack, per-worker counters are updated only by their owning
// worker, and the global block is written once, single-threaded, after every
// worker has joined. There is no inter-worker locking anywhere in this file.
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

// DirStats (DS) is local to exactly one directory scan. It is a plain
// value type: the scanner allocates one on its own stack per directory
// and folds it into the owning worker's WorkerStats at scan end.
type DirStats struct {
	OpenDirs   uint64
	StatCalls  uint64
	StatErrors uint64
	Warnings   uint64

	NDirs     uint64
	NFiles    uint64
	NSymlinks uint64
	NOthers   uint64

	// Size sums are signed so a sparse/overcount diagnostic is still
	// representable.
	BytesNominal   int64
	BytesAllocated int64

	ACLPresent    uint64
	HardLinkFiles uint64 // files with Nlink > 1 observed in this dir
	HardLinkExtra uint64 // sum of (Nlink - 1) over those files
	ZeroFiles     uint64
}

// WorkerStats (WS) accumulates every DirStats folded into it over the
// life of one worker, plus worker-only fields that have no per-directory
// analogue (read-only opens for secondary modes, CRC/prefix-read byte
// counts, compare-mode counts, the tally histogram and inode maxima).
type WorkerStats struct {
	DirStats

	ReadOnlyOpens  uint64
	ReadOnlyErrors uint64

	CRCBytes        uint64
	PrefixBytesRead uint64

	CompareCount     uint64
	CompareDiffCount uint64

	MaxInodeSeen     uint64
	MaxInodeSelected uint64

	// BirthtimeUnsupported is summed into the global stats, but no
	// code path increments it: ModeTimeFix does not attempt birthtime
	// repair (spec.md §9 Open Question).
	BirthtimeUnsupported uint64

	// ACLsExtracted / ACLsStripped count the ACL secondary mode's
	// per-entry outcomes (SPEC_FULL.md §4.1, §6).
	ACLsExtracted uint64
	ACLsStripped  uint64

	// Repaired / Deleted count ModeTimeFix / ModeDelete's per-entry
	// outcomes (SPEC_FULL.md §5).
	Repaired uint64
	Deleted  uint64

	Tally *Tally
}

// GlobalStats (GS) has the identical shape to WorkerStats; it exists as
// a distinct name so call sites are explicit about which tier they hold.
type GlobalStats = WorkerStats

// Fold adds ds's counters into ws. It is called exactly once, at the end
// of each directory scan, by the worker that owns ws -- there is no
// locking because no other goroutine ever touches this worker's stats.
func (ws *WorkerStats) Fold(ds *DirStats) {
	ws.OpenDirs += ds.OpenDirs
	ws.StatCalls += ds.StatCalls
	ws.StatErrors += ds.StatErrors
	ws.Warnings += ds.Warnings

	ws.NDirs += ds.NDirs
	ws.NFiles += ds.NFiles
	ws.NSymlinks += ds.NSymlinks
	ws.NOthers += ds.NOthers

	ws.BytesNominal += ds.BytesNominal
	ws.BytesAllocated += ds.BytesAllocated

	ws.ACLPresent += ds.ACLPresent
	ws.HardLinkFiles += ds.HardLinkFiles
	ws.HardLinkExtra += ds.HardLinkExtra
	ws.ZeroFiles += ds.ZeroFiles
}

// NewWorkerStats returns a WorkerStats with a tally histogram built from
// thresholds (see tally.go); pass nil to disable bucket tallying.
func NewWorkerStats(thresholds []int64) *WorkerStats {
	ws := &WorkerStats{}
	if thresholds != nil {
		ws.Tally = NewTally(thresholds)
	}
	return ws
}

// Sum folds every worker's WorkerStats into one GlobalStats. It must
// only be called after every worker has terminated (spec.md: "join of
// every worker happens-before the main task sums WS into GS").
func Sum(all []*WorkerStats) *GlobalStats {
	gs := &GlobalStats{}

	var thresholds []int64
	for _, ws := range all {
		if ws == nil {
			continue
		}
		if ws.Tally != nil && thresholds == nil {
			thresholds = ws.Tally.Thresholds
		}

		gs.OpenDirs += ws.OpenDirs
		gs.StatCalls += ws.StatCalls
		gs.StatErrors += ws.StatErrors
		gs.Warnings += ws.Warnings

		gs.NDirs += ws.NDirs
		gs.NFiles += ws.NFiles
		gs.NSymlinks += ws.NSymlinks
		gs.NOthers += ws.NOthers

		gs.BytesNominal += ws.BytesNominal
		gs.BytesAllocated += ws.BytesAllocated

		gs.ACLPresent += ws.ACLPresent
		gs.HardLinkFiles += ws.HardLinkFiles
		gs.HardLinkExtra += ws.HardLinkExtra
		gs.ZeroFiles += ws.ZeroFiles

		gs.ReadOnlyOpens += ws.ReadOnlyOpens
		gs.ReadOnlyErrors += ws.ReadOnlyErrors
		gs.CRCBytes += ws.CRCBytes
		gs.PrefixBytesRead += ws.PrefixBytesRead
		gs.CompareCount += ws.CompareCount
		gs.CompareDiffCount += ws.CompareDiffCount
		gs.BirthtimeUnsupported += ws.BirthtimeUnsupported
		gs.ACLsExtracted += ws.ACLsExtracted
		gs.ACLsStripped += ws.ACLsStripped
		gs.Repaired += ws.Repaired
		gs.Deleted += ws.Deleted

		if ws.MaxInodeSeen > gs.MaxInodeSeen {
			gs.MaxInodeSeen = ws.MaxInodeSeen
		}
		if ws.MaxInodeSelected > gs.MaxInodeSelected {
			gs.MaxInodeSelected = ws.MaxInodeSelected
		}
	}

	if thresholds != nil {
		gs.Tally = NewTally(thresholds)
		for _, ws := range all {
			if ws == nil || ws.Tally == nil {
				continue
			}
			gs.Tally.Merge(ws.Tally)
		}
	}

	return gs
}
