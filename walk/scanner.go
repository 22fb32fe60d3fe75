// scanner.go - directory scanner (spec.md §4.C)
//
// Grounded on fio.Info/fio.StatAt/fio.OpenatDir for directory-relative
// metadata (opencoff-go-fio's normalized stat type, extended here with
// the *at()-based relative queries spec.md §4.B calls for) and on
// fio/xattr.go's xattr fetch pattern for the redaction path's
// inode-by-component lookups.
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

package walk

import (
	"io/fs"
	"os"
	"path"
	"time"

	"github.com/opencoff/pwalk/acl"
	"github.com/opencoff/pwalk/audit"
	"github.com/opencoff/pwalk/checksum"
	"github.com/opencoff/pwalk/config"
	"github.com/opencoff/pwalk/fio"
	"github.com/opencoff/pwalk/format"
	"github.com/opencoff/pwalk/stats"
)

// MaxPathLen bounds the canonical-form length spec.md §4.C names as an
// edge case ("a directory whose canonical-form length plus any child
// name would exceed the maximum path length produces a warning").
const MaxPathLen = 4096

// Scanner holds everything one worker needs to scan a single directory
// at a time; it is owned exclusively by its worker (spec.md §5: "Per-worker
// stats ... None; owner-exclusive").
type Scanner struct {
	id       int
	cfg      *config.Config
	resolver *Resolver
	fifo     FIFOPusher
	ws       *stats.WorkerStats
	tally    *stats.Tally
	out       format.Formatter
	cmpOut    *format.CmpFormatter
	auditOut  *format.AuditFormatter
	redactor  *Redactor
	redactOut *format.RedactFormatter
	aclOut    *format.ACLFormatter
	warn      func(format string, args ...interface{})
}

// FIFOPusher is the minimal surface Scanner needs from fifo.FIFO; kept
// as an interface so scanner tests can substitute an in-memory fake.
type FIFOPusher interface {
	Push(path string) error
}

// NewScanner builds a Scanner for worker id. redactCache may be nil
// when cfg.Redact is false; redactOut and aclOut are likewise only
// used when the corresponding cfg flag is set.
func NewScanner(id int, cfg *config.Config, r *Resolver, f FIFOPusher, ws *stats.WorkerStats, out format.Formatter, warn func(string, ...interface{}), redactCache *fio.FioMap, redactOut *format.RedactFormatter, aclOut *format.ACLFormatter) *Scanner {
	s := &Scanner{id: id, cfg: cfg, resolver: r, fifo: f, ws: ws, out: out, warn: warn, redactOut: redactOut, aclOut: aclOut}
	if len(cfg.TallyThresholds) > 0 {
		if ws.Tally == nil {
			ws.Tally = stats.NewTally(cfg.TallyThresholds)
		}
		s.tally = ws.Tally
	}
	if cmp, ok := out.(*format.CmpFormatter); ok {
		s.cmpOut = cmp
	}
	if a, ok := out.(*format.AuditFormatter); ok {
		s.auditOut = a
	}
	if cfg.Redact && redactCache != nil {
		s.redactor = NewRedactor(r.SourceRoot(id), redactCache)
	}
	return s
}

// Scan implements spec.md §4.C's algorithm for one popped relative
// directory path.
func (s *Scanner) Scan(relpath string) {
	root := s.resolver.SourceRoot(s.id)
	rootFd := int(root.Fd.Fd())

	ds := &stats.DirStats{}

	name := relOpenName(relpath)
	dirFd, err := fio.OpenatDir(rootFd, name)
	if err != nil {
		ds.Warnings++
		s.warn("open %s/%s: %s", root.Path, relpath, err)
		s.ws.Fold(ds)
		return
	}
	df := os.NewFile(uintptr(dirFd), path.Join(root.Path, relpath))
	defer df.Close()

	ds.OpenDirs++

	parentSt, err := df.Stat()
	if err != nil {
		ds.Warnings++
		s.warn("fstat %s: %s", relpath, err)
		s.ws.Fold(ds)
		return
	}
	parentDev, _ := statDevIno(parentSt)

	entries, err := df.ReadDir(-1)
	if err != nil {
		ds.Warnings++
		s.warn("readdir %s: %s", relpath, err)
		s.ws.Fold(ds)
		return
	}

	for _, de := range entries {
		childName := de.Name()
		if childName == "." || childName == ".." {
			continue
		}

		relchild := joinRel(relpath, childName)
		if len(root.Path)+1+len(relchild) > MaxPathLen {
			ds.Warnings++
			s.warn("path too long, skipped: %s", relchild)
			continue
		}

		fi, err := fio.StatAt(dirFd, childName)
		if err != nil {
			ds.StatErrors++
			continue
		}
		ds.StatCalls++
		fi.SetPath(relchild)

		selected := s.cfg.Select == nil || s.cfg.Select(relchild, fi)

		switch {
		case fi.IsDir():
			if !s.cfg.CrossFilesystem && fi.Dev != parentDev {
				ds.Warnings++
				s.warn("cross-filesystem skip: %s", relchild)
				continue
			}
			if isSkipName(s.cfg.SkipNames, childName) {
				ds.Warnings++
				s.warn("name-based skip: %s", relchild)
				continue
			}
			ds.NDirs++
			if err := s.fifo.Push(relchild); err != nil {
				s.warn("push %s: %s", relchild, err)
			}
			if selected {
				s.emit(relchild, fi)
			}

		case fi.Mode().IsRegular():
			ds.NFiles++
			if xa, xerr := fio.LgetXattr(path.Join(root.Path, relchild)); xerr == nil {
				fi.Xattr = xa
			} else {
				ds.Warnings++
				s.warn("xattr %s: %s", relchild, xerr)
			}
			s.accumulate(ds, fi)
			if selected {
				s.runSecondary(dirFd, childName, relchild, fi, ds)
				s.emit(relchild, fi)
			}

		case fi.Mode()&fs.ModeSymlink != 0:
			ds.NSymlinks++
			if selected {
				s.emit(relchild, fi)
			}

		default:
			ds.NOthers++
			if selected {
				s.emit(relchild, fi)
			}
		}
	}

	s.ws.Fold(ds)
}

func (s *Scanner) emit(relpath string, fi *fio.Info) {
	if s.redactor != nil && s.redactOut != nil {
		red := s.redactor.Path(relpath, func(prefix string) {
			// emit() runs per-entry, outside any DirStats/Fold scope,
			// so this is the single place this warning is counted.
			s.ws.Warnings++
			s.warn("redact: could not resolve inode for %s", prefix)
		})
		if err := s.redactOut.EmitPath(red); err != nil {
			s.warn("redact emit %s: %s", relpath, err)
		}
	}

	if s.cmpOut != nil {
		// ModeCompare has its own emit path driven from runSecondary's
		// target-side lookup; the generic formatter Emit is a no-op.
		return
	}
	if err := s.out.Emit(relpath, fi); err != nil {
		s.warn("emit %s: %s", relpath, err)
	}
}

// accumulate folds one regular-file entry's nominal/allocated bytes,
// hard-link and zero-byte contributions into ds (spec.md §4.C.h, §4.F).
func (s *Scanner) accumulate(ds *stats.DirStats, fi *fio.Info) {
	ds.BytesNominal += fi.Size()
	blocks := (fi.Size() + s.cfg.BlockUnit - 1) / s.cfg.BlockUnit
	ds.BytesAllocated += blocks * s.cfg.BlockUnit

	if fi.Size() == 0 {
		ds.ZeroFiles++
	}
	if fi.Nlink > 1 {
		ds.HardLinkFiles++
		ds.HardLinkExtra += uint64(fi.Nlink) - 1
	}
	if len(fi.Xattr) > 0 {
		ds.ACLPresent++
	}

	if s.tally != nil {
		s.tally.Add(fi.Size(), blocks*s.cfg.BlockUnit)
	}
}

// runSecondary applies the enabled orthogonal behaviours to one regular
// file (spec.md §4.C.g): prefix-read, CRC, compare-against-target, ACL
// extraction/stripping, plus whichever primary mode (§5) acts on this
// entry. Each behaviour is isolated: an error here is counted, never
// fatal.
func (s *Scanner) runSecondary(dirFd int, childName, relpath string, fi *fio.Info, ds *stats.DirStats) {
	root := s.resolver.SourceRoot(s.id)
	abs := path.Join(root.Path, relpath)

	if s.cfg.PrefixReadBytes > 0 {
		if r, err := checksum.Prefix(abs, s.cfg.PrefixReadBytes); err != nil {
			s.ws.ReadOnlyErrors++
		} else {
			s.ws.ReadOnlyOpens++
			s.ws.PrefixBytesRead += uint64(r.BytesRead)
		}
	}

	if s.cfg.CRCEnabled {
		if r, err := checksum.File(abs); err != nil {
			s.ws.ReadOnlyErrors++
		} else {
			s.ws.ReadOnlyOpens++
			s.ws.CRCBytes += uint64(r.BytesRead)
		}
	}

	if s.cfg.ACLExtract || s.cfg.ACLStrip {
		s.runACL(abs, relpath)
	}

	if s.cmpOut != nil && s.resolver.TargetRoot(s.id) != nil {
		s.compareAgainstTarget(relpath, fi)
	}

	switch s.cfg.Mode {
	case config.ModeTimeFix:
		s.runTimeFix(relpath, fi)
	case config.ModeDelete:
		s.runDelete(dirFd, childName, relpath, fi)
	case config.ModeAudit:
		s.runAudit(relpath, fi)
	}

	if fi.Ino > s.ws.MaxInodeSeen {
		s.ws.MaxInodeSeen = fi.Ino
	}
	if selected := s.cfg.Select == nil || s.cfg.Select(relpath, fi); selected {
		if fi.Ino > s.ws.MaxInodeSelected {
			s.ws.MaxInodeSelected = fi.Ino
		}
	}
}

// runACL extracts and/or strips the ACL of one entry (SPEC_FULL.md
// §4.1, §6). Extraction renders each ACE via acl.POSIXToNFSv4/chex and
// emits it to the worker's .acl stream; the underlying ACL itself is
// never modified unless ACLStrip is also set.
func (s *Scanner) runACL(abs, relpath string) {
	a, err := acl.LGet(abs)
	if err != nil {
		s.ws.ReadOnlyErrors++
		s.warn("acl get %s: %s", relpath, err)
		return
	}
	if s.cfg.ACLExtract && a.Present() {
		s.ws.ACLsExtracted++
		for _, ace := range acl.POSIXToNFSv4(a) {
			if s.aclOut != nil {
				if err := s.aclOut.EmitACE(relpath, ace.Chex()); err != nil {
					s.warn("acl emit %s: %s", relpath, err)
				}
			}
		}
	}
	if s.cfg.ACLStrip && a.Present() {
		if err := acl.Strip(abs); err != nil {
			s.ws.ReadOnlyErrors++
			s.warn("acl strip %s: %s", relpath, err)
			return
		}
		s.ws.ACLsStripped++
	}
}

// runTimeFix repairs the corresponding target-root entry's mtime/atime
// to match fi (spec.md §5 ModeTimeFix), via fio's clonetimes-based
// UpdateTimes helper. A target entry that doesn't exist is not an
// error: ModeTimeFix only repairs entries that are actually present on
// both sides.
func (s *Scanner) runTimeFix(relpath string, fi *fio.Info) {
	tgt := s.resolver.TargetRoot(s.id)
	if tgt == nil {
		return
	}
	dst := path.Join(tgt.Path, relpath)
	if _, err := os.Lstat(dst); err != nil {
		return
	}
	if err := fio.UpdateTimes(dst, fi); err != nil {
		s.ws.ReadOnlyErrors++
		s.warn("timefix %s: %s", relpath, err)
		return
	}
	if fx, ok := s.out.(*format.FixFormatter); ok {
		_ = fx.Emit(relpath, fi)
	}
	s.ws.Repaired++
}

// runDelete unlinks a selected entry in place (spec.md §5 ModeDelete),
// via unlinkat against the already-open parent directory fd.
func (s *Scanner) runDelete(dirFd int, childName, relpath string, fi *fio.Info) {
	if err := fio.UnlinkAt(dirFd, childName); err != nil {
		s.ws.ReadOnlyErrors++
		s.warn("delete %s: %s", relpath, err)
		return
	}
	if rm, ok := s.out.(*format.RMFormatter); ok {
		_ = rm.Emit(relpath, fi)
	}
	s.ws.Deleted++
}

// runAudit derives and emits a retention report for one entry (spec.md
// §5 ModeAudit), via audit.Inspect.
func (s *Scanner) runAudit(relpath string, fi *fio.Info) {
	r := audit.Inspect(relpath, fi, time.Now())
	if s.auditOut == nil {
		return
	}
	if err := s.auditOut.EmitReport(r); err != nil {
		s.warn("audit emit %s: %s", relpath, err)
	}
}

func (s *Scanner) compareAgainstTarget(relpath string, fi *fio.Info) {
	tgt := s.resolver.TargetRoot(s.id)
	tgtAbs := path.Join(tgt.Path, relpath)

	s.ws.CompareCount++
	tfi, err := fio.Lstat(tgtAbs)
	var tp *fio.Info
	if err == nil {
		tp = tfi
	} else if !os.IsNotExist(err) {
		s.ws.ReadOnlyErrors++
		return
	}

	d := format.Compare(fi, tp)
	if d != 0 {
		s.ws.CompareDiffCount++
	}
	if err := s.cmpOut.EmitDiff(relpath, fi, tp); err != nil {
		s.warn("cmp emit %s: %s", relpath, err)
	}
}

func relOpenName(relpath string) string {
	if relpath == "" {
		return "."
	}
	return relpath
}

func joinRel(parent, child string) string {
	if parent == "" || parent == "." {
		return child
	}
	return parent + "/" + child
}

func isSkipName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
