// walk.go - top-level entry point wiring FIFO + resolver + pool +
// manager + scanners into one walk (spec.md §2 "Data flow").
//
// Grounded on original_source/src/pwalk.c's main(): seed the FIFO with
// the initial directory arguments, raise rlimits, start N workers plus
// one manager, wait for quiescence, then sum per-worker stats into one
// GlobalStats.
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
	"fmt"
	"sync"
	"time"

	"github.com/opencoff/pwalk/config"
	"github.com/opencoff/pwalk/fifo"
	"github.com/opencoff/pwalk/fio"
	"github.com/opencoff/pwalk/format"
	"github.com/opencoff/pwalk/stats"
)

// FatalError is a fatal invariant violation detected mid-walk (spec.md
// §7 kind 2): a FIFO read failure against a non-empty queue, or a
// push/pop counter mismatch observed at shutdown.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string { return fmt.Sprintf("walk: fatal: %s", e.Err) }
func (e *FatalError) Unwrap() error { return e.Err }

// Logger is the minimal logging surface Walk needs; *plog.Log
// satisfies it, and tests can pass a lightweight fake instead.
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
}

// Result is everything a completed walk hands back to its caller.
type Result struct {
	Stats        *stats.GlobalStats
	Pushes, Pops uint64
}

// Walk resolves cfg's roots, seeds the FIFO with seeds (root-relative
// directory arguments; pass []string{"."} for "the whole tree"), runs
// cfg.Workers scanners to quiescence, and returns the summed stats.
func Walk(cfg *config.Config, seeds []string, fifoPath string, log Logger) (*Result, error) {
	resolver, err := NewResolver(cfg.SourceRoots, cfg.TargetRoots)
	if err != nil {
		return nil, err
	}
	defer resolver.Close()

	q, err := fifo.New(fifoPath)
	if err != nil {
		return nil, err
	}
	defer q.Close()

	n := cfg.Workers
	if n < 1 {
		n = 1
	}
	pool := NewPool(n, q)

	var fatal error
	var fatalOnce sync.Once
	onFatal := func(err error) {
		fatalOnce.Do(func() {
			fatal = &FatalError{Err: err}
			log.Warn("fatal: %s", err)
		})
	}

	for _, s := range seeds {
		if err := q.Push(s); err != nil {
			return nil, err
		}
	}

	var redactCache *fio.FioMap
	if cfg.Redact {
		redactCache = fio.NewFioMap()
	}

	workers := make([]*Worker, n)
	fmtrs := make([]format.Formatter, n)
	redactFmtrs := make([]*format.RedactFormatter, n)
	aclFmtrs := make([]*format.ACLFormatter, n)
	for i := 0; i < n; i++ {
		fmtr := format.New(cfg.Mode.Ext(), cfg.OutDir, i)
		fmtrs[i] = fmtr
		if cfg.Redact {
			redactFmtrs[i] = format.NewRedact(cfg.OutDir, i)
		}
		if cfg.ACLExtract {
			aclFmtrs[i] = format.NewACL(cfg.OutDir, i)
		}
		// warn only logs: every call site already increments its own
		// ds.Warnings/ws.Warnings before (or in lieu of) calling warn,
		// and DirStats.Warnings is folded into WorkerStats.Warnings by
		// Fold, so counting here too would double (or triple) count.
		warn := func(f string, args ...interface{}) {
			log.Warn(f, args...)
		}
		sc := NewScanner(i, cfg, resolver, q, pool.Stats(i), fmtr, warn, redactCache, redactFmtrs[i], aclFmtrs[i])
		workers[i] = NewWorker(i, pool, q, sc, onFatal)
	}

	var wg sync.WaitGroup
	wg.Add(n + 1)

	stop := make(chan struct{})
	go func() {
		defer wg.Done()
		pool.Manage()
		close(stop)
	}()

	for _, w := range workers {
		go func(w *Worker) {
			defer wg.Done()
			w.Run()
		}(w)
	}

	if log != nil {
		go reportProgress(pool, q, log, time.Duration(cfg.ProgressInterval)*time.Second, stop)
	}

	wg.Wait()

	for _, fmtr := range fmtrs {
		fmtr.Close()
	}
	for _, rf := range redactFmtrs {
		if rf != nil {
			rf.Close()
		}
	}
	for _, af := range aclFmtrs {
		if af != nil {
			af.Close()
		}
	}

	var all []*stats.WorkerStats
	for i := 0; i < n; i++ {
		all = append(all, pool.Stats(i))
	}
	gs := stats.Sum(all)

	pushes, pops := q.Counts()
	if fatal == nil && pushes != pops {
		fatal = &FatalError{Err: fmt.Errorf("push/pop mismatch: pushes=%d pops=%d", pushes, pops)}
	}

	return &Result{Stats: gs, Pushes: pushes, Pops: pops}, fatal
}

// reportProgress emits a progress line every interval (900s when
// interval is not positive; spec.md §6) until stop is closed. Tests
// and short runs simply never see a tick.
func reportProgress(pool *Pool, q *fifo.FIFO, log Logger, interval time.Duration, stop <-chan struct{}) {
	if interval <= 0 {
		interval = 900 * time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	start := time.Now()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			log.Info("progress: fifo depth %d, elapsed %s", q.Depth(), time.Since(start).Round(time.Second))
		}
	}
}
