// audit.go - simplified WORM/SmartLock-style retention audit
//
// Grounded on original_source/src/pwalk_audit.h's pwalk_audit_file():
// that function queries a OneFS-specific Python/ioctl symbiont for a
// file's SmartLock domain state and renders it as one CSV line keyed
// by a lock_domain_type / lock_status column pair ('E'/'C'/'-' and
// '-'/'C'/'c'/'X'). There is no portable Go equivalent of OneFS's
// domain ioctls (they are a proprietary on-disk structure reachable
// only through Isilon's kernel module), so this package keeps the
// column shape and the commit/expire state machine but sources its
// input from a portable proxy: a "system.worm_retention" xattr holding
// a Unix-seconds retention deadline, if the filesystem/tooling sets
// one. Absence of the xattr reports state '-' (not locked) rather than
// failing, so ModeAudit is exercisable on any POSIX filesystem.
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

package audit

import (
	"strconv"
	"time"

	"github.com/opencoff/pwalk/fio"
)

// RetentionXattr is the extended-attribute key this package treats as
// the portable proxy for a OneFS SmartLock retention date: its value is
// the retention deadline as a decimal Unix-seconds timestamp.
const RetentionXattr = "system.worm_retention"

// LockStatus mirrors pwalk_audit.h's column 2 ('-', 'C', 'c', 'X').
type LockStatus byte

const (
	StatusUnlocked     LockStatus = '-'
	StatusCommitted    LockStatus = 'C'
	StatusLatentCommit LockStatus = 'c'
	StatusExpired      LockStatus = 'X'
)

// Report is one entry's audit record, column-compatible in spirit with
// pwalk_audit.h's CSV output (uid/size/blocks/path plus the derived
// lock state), minus the OneFS-only domain fields this package cannot
// source portably.
type Report struct {
	Path          string
	LockStatus    LockStatus
	RetentionDate time.Time // zero if not ascertainable
	Uid           uint32
	Size          int64
	Blocks        int64
}

// Inspect derives a Report for fi, skipping directories (pwalk_audit.h:
// "Skip directories ...").
func Inspect(relpath string, fi *fio.Info, now time.Time) *Report {
	r := &Report{
		Path: relpath,
		Uid:  fi.Uid,
		Size: fi.Size(),
	}
	if fi.IsDir() {
		r.LockStatus = StatusUnlocked
		return r
	}

	raw, ok := fi.Xattr[RetentionXattr]
	if !ok || raw == "" {
		r.LockStatus = StatusUnlocked
		return r
	}

	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		r.LockStatus = StatusUnlocked
		return r
	}
	r.RetentionDate = time.Unix(secs, 0)

	switch {
	case r.RetentionDate.Before(now):
		r.LockStatus = StatusExpired
	case fi.Mode().Perm()&0222 == 0:
		// no write bits for anyone: treat as a fully committed lock,
		// matching pwalk_audit.h's "READONLY, NON-DELETABLE" state.
		r.LockStatus = StatusCommitted
	default:
		r.LockStatus = StatusLatentCommit
	}
	return r
}
