package frame

import (
	"time"

	"github.com/halcyonpartners/backdrop/internal/update"
)

// ID identifies a requested frame callback. Zero is never issued.
type ID uint64

type Callback func(now time.Duration)

type entry struct {
	id ID
	fn Callback
}

// Loop hands out one-shot frame callbacks, much like a browser's
// animation-frame queue. Callbacks requested while a frame runs are deferred
// to the next frame.
type Loop struct {
	pending       []entry
	running       []entry
	nextID        ID
	registrations int
}

func NewLoop() *Loop {
	return &Loop{}
}

// Request schedules fn for the next Run.
func (l *Loop) Request(fn Callback) ID {
	l.nextID++
	l.registrations++
	l.pending = append(l.pending, entry{id: l.nextID, fn: fn})
	return l.nextID
}

// Cancel drops a scheduled callback. Unknown or already-run IDs are ignored.
func (l *Loop) Cancel(id ID) {
	for i, e := range l.pending {
		if e.id == id {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			return
		}
	}
	for i := range l.running {
		if l.running[i].id == id {
			l.running[i].fn = nil
			return
		}
	}
}

// Run invokes every callback scheduled before the call.
func (l *Loop) Run(now time.Duration) int {
	l.running, l.pending = l.pending, l.running[:0]
	ran := 0
	for i := range l.running {
		fn := l.running[i].fn
		if fn == nil {
			continue
		}
		fn(now)
		ran++
	}
	l.running = l.running[:0]
	return ran
}

// Pending reports how many callbacks wait for the next Run.
func (l *Loop) Pending() int {
	return len(l.pending)
}

// Registrations counts every Request made over the loop's lifetime.
func (l *Loop) Registrations() int {
	return l.registrations
}

// Clock turns host timestamps into clamped frame deltas. Elapsed time only
// advances by clamped deltas, so time spent paused or stalled never shows up
// as a jump in animation time.
type Clock struct {
	maxDelta float32
	last     time.Duration
	started  bool
	elapsed  float32
}

func NewClock(maxDelta float32) *Clock {
	return &Clock{maxDelta: maxDelta}
}

// Tick returns the clamped delta since the previous tick and the total
// animation time. The first tick has a zero delta.
func (c *Clock) Tick(now time.Duration) (dt, elapsed float32) {
	if !c.started {
		c.started = true
		c.last = now
		return 0, c.elapsed
	}
	raw := float32((now - c.last).Seconds())
	c.last = now
	dt = update.ClampDelta(raw, c.maxDelta)
	c.elapsed += dt
	return dt, c.elapsed
}

// Elapsed is the animation time accumulated so far.
func (c *Clock) Elapsed() float32 {
	return c.elapsed
}
