// fifo.go - durable, thread-safe work queue of directory paths
//
// The queue is file-backed (a dual-handle append/read file pair) so
// its aggregate memory footprint is bounded by disk rather than RAM;
// a run over a tree with millions of directories never needs to hold
// more than the in-flight handful in process memory.
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

package fifo

import (
	"bufio"
	"fmt"
	"os"
	"sync"
)

// Waker is implemented by the manager that owns the worker wakeup
// protocol. Push() calls Poke() when the queue transitions from
// "nobody would notice" to "somebody might be waiting" -- specifically
// whenever the number of busy workers is below the configured worker
// count, per spec: "wake the manager if the number of busy workers is
// less than the configured worker count".
type Waker interface {
	BusyCount() int
	Poke()
}

// FIFO is a durable, accounted queue of relative directory paths.
// All of depth, pushes and pops are guarded by a single accounting
// mutex; the file handles are set once at construction, and nworkers
// and waker once by Attach.
type FIFO struct {
	mu sync.Mutex

	pushes uint64
	pops   uint64

	path string
	wfd  *os.File
	rfd  *os.File
	rbuf *bufio.Reader

	nworkers int
	waker    Waker
}

// New creates a file-backed FIFO at path, truncating any existing
// file of that name. The path is typically
// "<outdir>/<progname>.fifo" (spec.md §6); it is left on disk after
// a normal exit for forensic purposes.
func New(path string) (*FIFO, error) {
	wfd, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return nil, &Error{"open-write", path, err}
	}

	rfd, err := os.Open(path)
	if err != nil {
		wfd.Close()
		return nil, &Error{"open-read", path, err}
	}

	return &FIFO{
		path: path,
		wfd:  wfd,
		rfd:  rfd,
		rbuf: bufio.NewReader(rfd),
	}, nil
}

// Attach wires the FIFO to the worker pool it serves: nworkers is the
// configured worker count and w receives Poke() calls per the manager
// wakeup protocol (§4.A, §4.E). Attach must be called once before the
// first Push.
func (f *FIFO) Attach(nworkers int, w Waker) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nworkers = nworkers
	f.waker = w
}

// Push encodes path and appends it to the durable store, then bumps
// the depth counter and wakes the manager if fewer than nworkers are
// currently busy. Push I/O errors are fatal (§4.A).
func (f *FIFO) Push(path string) error {
	line := Encode(path) + "\n"

	f.mu.Lock()
	_, err := f.wfd.WriteString(line)
	if err != nil {
		f.mu.Unlock()
		return &Error{"push", path, err}
	}
	f.pushes++
	waker, nworkers := f.waker, f.nworkers
	f.mu.Unlock()

	// The waker is consulted only after f.mu is released: the pool's
	// manager reads Depth() while holding its own lock, so taking the
	// pool lock here under f.mu would invert the lock order.
	if waker != nil && waker.BusyCount() < nworkers {
		waker.Poke()
	}
	return nil
}

// Pop removes and decodes the next path, or returns ok=false if the
// queue is empty -- it never blocks. A short/failed read against a
// non-empty queue is a fatal inconsistency (the backing file is
// corrupted) and is returned as an *Error.
func (f *FIFO) Pop() (path string, ok bool, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.pushes-f.pops == 0 {
		return "", false, nil
	}

	line, rerr := f.rbuf.ReadString('\n')
	if rerr != nil {
		return "", false, &Error{"pop", f.path, fmt.Errorf("short read at depth %d: %w", f.pushes-f.pops, rerr)}
	}

	// strip trailing newline
	line = line[:len(line)-1]

	decoded, derr := Decode(line)
	if derr != nil {
		return "", false, &Error{"pop", f.path, derr}
	}

	f.pops++
	return decoded, true, nil
}

// Depth returns the current queue depth (pushes - pops), which must
// always equal the physical number of unread lines.
func (f *FIFO) Depth() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pushes - f.pops
}

// Counts returns the running push/pop totals.
func (f *FIFO) Counts() (pushes, pops uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pushes, f.pops
}

// Close closes both handles. The backing file is left on disk; callers
// that want it removed must os.Remove(path) themselves.
func (f *FIFO) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	werr := f.wfd.Close()
	rerr := f.rfd.Close()
	if werr != nil {
		return werr
	}
	return rerr
}
