package preview

import (
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu   sync.Mutex
	docs []Document
}

func (r *recorder) record(d Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append(r.docs, d)
}

func (r *recorder) all() []Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Document(nil), r.docs...)
}

func TestPipelineDebounceCollapsesBurst(t *testing.T) {
	clock := &fakeClock{}
	p := NewPipeline(clock, DefaultDelay)
	rec := &recorder{}

	for _, text := range []string{"a", "ab", "abc", "abcd"} {
		p.Schedule(text, rec.record)
		clock.Advance(100 * time.Millisecond)
	}
	if got := len(rec.all()); got != 0 {
		t.Fatalf("rendered %d times during the burst, want 0", got)
	}
	if p.State() != PendingRender {
		t.Errorf("state = %s, want pending_render", p.State())
	}
	if clock.active() != 1 {
		t.Errorf("active timers = %d, want exactly 1", clock.active())
	}

	clock.Advance(DefaultDelay)

	docs := rec.all()
	if len(docs) != 1 {
		t.Fatalf("rendered %d times, want 1", len(docs))
	}
	if docs[0].Body() != "abcd" {
		t.Errorf("rendered %q, want last edit", docs[0].Body())
	}
	if p.State() != Idle {
		t.Errorf("state = %s, want idle", p.State())
	}
}

func TestPipelineSeparateBurstsRenderSeparately(t *testing.T) {
	clock := &fakeClock{}
	p := NewPipeline(clock, 0)
	rec := &recorder{}

	p.Schedule("one", rec.record)
	clock.Advance(DefaultDelay)
	p.Schedule("two", rec.record)
	clock.Advance(DefaultDelay)

	docs := rec.all()
	if len(docs) != 2 || docs[0].Body() != "one" || docs[1].Body() != "two" {
		t.Errorf("docs = %v", docs)
	}
}

func TestPipelineTimerNotYetDue(t *testing.T) {
	clock := &fakeClock{}
	p := NewPipeline(clock, DefaultDelay)
	rec := &recorder{}

	p.Schedule("x", rec.record)
	clock.Advance(DefaultDelay - time.Millisecond)
	if len(rec.all()) != 0 {
		t.Fatal("rendered before the quiet period elapsed")
	}
	clock.Advance(time.Millisecond)
	if len(rec.all()) != 1 {
		t.Fatal("did not render once the quiet period elapsed")
	}
}

func TestPipelineCancel(t *testing.T) {
	clock := &fakeClock{}
	p := NewPipeline(clock, DefaultDelay)
	rec := &recorder{}

	cancel := p.Schedule("x", rec.record)
	cancel()
	if p.State() != Idle {
		t.Errorf("state after cancel = %s, want idle", p.State())
	}
	clock.Advance(time.Second)
	if len(rec.all()) != 0 {
		t.Error("cancelled render ran")
	}
}

func TestStaleCancelLeavesNewerTask(t *testing.T) {
	clock := &fakeClock{}
	p := NewPipeline(clock, DefaultDelay)
	rec := &recorder{}

	stale := p.Schedule("old", rec.record)
	p.Schedule("new", rec.record)
	stale()

	clock.Advance(DefaultDelay)
	docs := rec.all()
	if len(docs) != 1 || docs[0].Body() != "new" {
		t.Errorf("docs = %v, want only the newer render", docs)
	}
}

func TestPipelineClose(t *testing.T) {
	clock := &fakeClock{}
	p := NewPipeline(clock, DefaultDelay)
	rec := &recorder{}

	p.Schedule("x", rec.record)
	p.Close()
	clock.Advance(time.Second)
	if len(rec.all()) != 0 {
		t.Error("render ran after Close")
	}
}

func TestDebouncerLateFireIgnored(t *testing.T) {
	// Simulates a timer whose Stop lost the race with firing.
	clock := &fakeClock{}
	d := NewDebouncer(clock, time.Second)
	ran := 0

	d.Submit(func() { ran++ })
	clock.mu.Lock()
	first := clock.timers[0]
	clock.mu.Unlock()

	d.Submit(func() { ran += 10 })
	first.f()
	if ran != 0 {
		t.Errorf("superseded task ran (ran=%d)", ran)
	}

	clock.Advance(time.Second)
	if ran != 10 {
		t.Errorf("ran = %d, want 10", ran)
	}
}

func TestPipelineSystemClock(t *testing.T) {
	p := NewPipeline(nil, 20*time.Millisecond)
	done := make(chan Document, 1)

	p.Schedule("a", func(d Document) { done <- d })
	p.Schedule("b", func(d Document) { done <- d })

	select {
	case d := <-done:
		if d.Body() != "b" {
			t.Errorf("rendered %q, want b", d.Body())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("render did not happen")
	}
}
