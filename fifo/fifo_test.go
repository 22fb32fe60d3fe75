package fifo

import (
	"fmt"
	"path/filepath"
	"runtime"
	"testing"
)

func newAsserter(t *testing.T) func(cond bool, msg string, args ...interface{}) {
	return func(cond bool, msg string, args ...interface{}) {
		if cond {
			return
		}
		_, file, line, ok := runtime.Caller(1)
		if !ok {
			file = "???"
			line = 0
		}
		s := fmt.Sprintf(msg, args...)
		t.Fatalf("\n%s: %d: Assertion failed: %s\n", file, line, s)
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	assert := newAsserter(t)

	cases := []string{
		"",
		"a",
		"a/b/c",
		"name with spaces",
		"quote\"here",
		"back\\slash",
		"ques?tion",
		"tab\there",
		"\x01",
		"\x00\x02\x7f",
		"nl\nhere",
	}

	for _, c := range cases {
		enc := Encode(c)
		dec, err := Decode(enc)
		assert(err == nil, "decode %q: %s", enc, err)
		assert(dec == c, "roundtrip: exp %q, saw %q (encoded %q)", c, dec, enc)
	}
}

func TestEscapePrintableIdentity(t *testing.T) {
	assert := newAsserter(t)

	s := "A/sub/dir-01.txt"
	enc := Encode(s)
	assert(enc == s, "printable path should be emitted verbatim: exp %q, saw %q", s, enc)
}

func TestFIFOBasic(t *testing.T) {
	assert := newAsserter(t)

	tmp := t.TempDir()
	fname := filepath.Join(tmp, "test.fifo")

	f, err := New(fname)
	assert(err == nil, "new fifo: %s", err)
	defer f.Close()

	assert(f.Depth() == 0, "initial depth: exp 0, saw %d", f.Depth())

	paths := []string{"A", "A/sub", "A/sub/\x01", "A/b c"}
	for _, p := range paths {
		err := f.Push(p)
		assert(err == nil, "push %q: %s", p, err)
	}

	assert(f.Depth() == uint64(len(paths)), "depth after push: exp %d, saw %d", len(paths), f.Depth())

	for _, want := range paths {
		got, ok, err := f.Pop()
		assert(err == nil, "pop: %s", err)
		assert(ok, "pop: expected a value")
		assert(got == want, "pop: exp %q, saw %q", want, got)
	}

	_, ok, err := f.Pop()
	assert(err == nil, "pop on empty: %s", err)
	assert(!ok, "pop on empty: expected ok=false")
	assert(f.Depth() == 0, "final depth: exp 0, saw %d", f.Depth())

	pushes, pops := f.Counts()
	assert(pushes == pops, "pushes != pops: %d vs %d", pushes, pops)
}

type fakeWaker struct {
	busy  int
	poked int
}

func (w *fakeWaker) BusyCount() int { return w.busy }
func (w *fakeWaker) Poke()          { w.poked++ }

func TestFIFOPokesWhenIdleWorkerExists(t *testing.T) {
	assert := newAsserter(t)

	tmp := t.TempDir()
	f, err := New(filepath.Join(tmp, "test.fifo"))
	assert(err == nil, "new fifo: %s", err)
	defer f.Close()

	w := &fakeWaker{busy: 4}
	f.Attach(8, w)

	err = f.Push("A")
	assert(err == nil, "push: %s", err)
	assert(w.poked == 1, "expected a poke when busy < nworkers, saw %d", w.poked)

	w.busy = 8
	err = f.Push("B")
	assert(err == nil, "push: %s", err)
	assert(w.poked == 1, "expected no poke when all workers busy, saw %d", w.poked)
}
