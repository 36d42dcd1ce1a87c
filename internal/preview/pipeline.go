package preview

import "time"

// DefaultDelay is the quiet period after the last edit before rendering.
const DefaultDelay = 300 * time.Millisecond

// State of a pipeline.
type State int

const (
	Idle State = iota
	PendingRender
)

func (s State) String() string {
	if s == PendingRender {
		return "pending_render"
	}
	return "idle"
}

// Pipeline debounces editor text into rendered documents. Each editor
// session owns one pipeline.
type Pipeline struct {
	debouncer *Debouncer
}

// NewPipeline creates a pipeline. A nil clock uses the system clock and a
// non-positive delay uses DefaultDelay.
func NewPipeline(clock Clock, delay time.Duration) *Pipeline {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Pipeline{debouncer: NewDebouncer(clock, delay)}
}

// Schedule queues raw for rendering and restarts the quiet period. Only the
// text of the last call in a burst reaches onRendered, which runs on the
// clock's goroutine.
func (p *Pipeline) Schedule(raw string, onRendered func(Document)) CancelFunc {
	return p.debouncer.Submit(func() {
		onRendered(Render(raw))
	})
}

// State reports whether a render is pending.
func (p *Pipeline) State() State {
	if p.debouncer.Pending() {
		return PendingRender
	}
	return Idle
}

// Close drops any pending render.
func (p *Pipeline) Close() {
	p.debouncer.Cancel()
}
