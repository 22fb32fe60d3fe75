// setup.go - startup-time rlimit raising, output directory creation and
// privilege downgrade (spec.md §4.E "Rlimits"/"Privilege downgrade", §6
// "Output directory").
//
// Grounded on the gcsfuse example repo's unix.Getrlimit/unix.Setrlimit
// use (other_examples), which is the only place in the retrieval pack
// that raises RLIMIT_NOFILE via golang.org/x/sys/unix.
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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"
)

// rlimitConstant is the fixed per-process file-descriptor overhead
// (stdio, the primary log, the FIFO's two handles, listening sockets
// if any) added to the per-worker and per-root requirement.
const rlimitConstant = 16

// neededFds computes spec.md §4.E's "constant + 4*N + roots": each
// worker holds at most its root fd, its current directory fd, and its
// (at most) two lazily-created output files open at once.
func neededFds(workers, roots int) uint64 {
	return uint64(rlimitConstant + 4*workers + roots)
}

// raiseRlimit raises RLIMIT_NOFILE to at least need, up to the hard
// limit, or fails (spec.md: "raise it up to the hard limit or fail fast").
func raiseRlimit(need uint64) error {
	var rl unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rl); err != nil {
		return fmt.Errorf("getrlimit: %w", err)
	}
	if rl.Cur >= need {
		return nil
	}
	want := need
	if want > rl.Max {
		want = rl.Max
	}
	if want < need {
		return fmt.Errorf("rlimit: need %d open files, hard limit is %d", need, rl.Max)
	}
	rl.Cur = want
	if err := unix.Setrlimit(unix.RLIMIT_NOFILE, &rl); err != nil {
		return fmt.Errorf("setrlimit: %w", err)
	}
	return nil
}

// maxOutDirRetries bounds the output-directory creation retry loop
// (spec.md §6: "retries with a one-second sleep up to a fixed bound
// (e.g. 32), then fails fast").
const maxOutDirRetries = 32

// makeOutDir creates "<outroot>/<progname>-YYYY-MM-DD_HH_MM_SS",
// retrying on "exists" up to maxOutDirRetries times.
func makeOutDir(outroot, progname string, now time.Time) (string, error) {
	stamp := now.Format("2006-01-02_15_04_05")
	dir := filepath.Join(outroot, fmt.Sprintf("%s-%s", progname, stamp))

	for i := 0; i < maxOutDirRetries; i++ {
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return dir, nil
		}
		if !os.IsExist(err) {
			return "", fmt.Errorf("mkdir %s: %w", dir, err)
		}
		time.Sleep(time.Second)
		now = now.Add(time.Second)
		stamp = now.Format("2006-01-02_15_04_05")
		dir = filepath.Join(outroot, fmt.Sprintf("%s-%s", progname, stamp))
	}
	return "", fmt.Errorf("mkdir: %s-* already exists after %d retries", progname, maxOutDirRetries)
}

// downgradeOwnership lowers nm's ownership to the invoking user's real
// uid/gid when the process is running with elevated privilege (spec.md
// §4.D "If running with elevated privilege, any created file has its
// ownership lowered to that of the invoking user").
func downgradeOwnership(nm string) error {
	if os.Geteuid() == os.Getuid() && os.Getegid() == os.Getgid() {
		return nil
	}
	return os.Chown(nm, os.Getuid(), os.Getgid())
}
