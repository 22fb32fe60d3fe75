package walk

import (
	"testing"

	"github.com/opencoff/pwalk/fifo"
)

func TestPoolStartAndStats(t *testing.T) {
	dir := t.TempDir()
	q, err := fifo.New(dir + "/t.fifo")
	if err != nil {
		t.Fatal(err)
	}
	defer q.Close()

	p := NewPool(2, q)
	if ws := p.Stats(0); ws == nil {
		t.Fatalf("exp non-nil stats for worker 0")
	}
	if p.BusyCount() != 0 {
		t.Fatalf("exp 0 busy workers initially, saw %d", p.BusyCount())
	}
}

func TestPoolQuiescesWithEmptyFIFO(t *testing.T) {
	dir := t.TempDir()
	q, err := fifo.New(dir + "/t.fifo")
	if err != nil {
		t.Fatal(err)
	}
	defer q.Close()

	p := NewPool(1, q)

	done := make(chan struct{})
	go func() {
		p.Manage()
		close(done)
	}()

	go func() {
		p.start(0)
		p.awaitWake(0) // returns false once Manage observes quiescence
	}()

	<-done
}
