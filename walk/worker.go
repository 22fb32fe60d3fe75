// worker.go - worker drain loop (spec.md §4.D)
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
	"runtime"

	"github.com/opencoff/pwalk/fifo"
)

// Worker drives one scanner for the life of the walk: park idle, wake,
// drain the FIFO one directory at a time, go idle again, repeat until
// the pool reaches quiescence.
type Worker struct {
	ID      int
	pool    *Pool
	fifo    *fifo.FIFO
	scanner *Scanner
	onFatal func(error)
}

// NewWorker builds a Worker bound to pool and scanner.
func NewWorker(id int, pool *Pool, f *fifo.FIFO, scanner *Scanner, onFatal func(error)) *Worker {
	return &Worker{ID: id, pool: pool, fifo: f, scanner: scanner, onFatal: onFatal}
}

// Run is the worker's body: embryonic -> idle, then alternates idle and
// busy until the pool signals quiescence. Intended to be launched with
// `go w.Run()`.
func (w *Worker) Run() {
	w.pool.start(w.ID)

	for w.pool.awaitWake(w.ID) {
		w.pool.markBusy(w.ID)
		w.drain()
		w.pool.finishDrain(w.ID)
	}
}

// drain pops and scans until the FIFO runs dry, yielding briefly
// between directories so other workers get fair access to the FIFO and
// accounting lock (spec.md §4.D "Drain loop").
func (w *Worker) drain() {
	for {
		relpath, ok, err := w.fifo.Pop()
		if err != nil {
			if w.onFatal != nil {
				w.onFatal(err)
			}
			return
		}
		if !ok {
			return
		}

		w.scanner.Scan(relpath)
		runtime.Gosched()
	}
}
