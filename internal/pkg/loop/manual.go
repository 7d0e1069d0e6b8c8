package loop

import (
	"time"
)

// Manual is a deterministic Scheduler driven by the caller. Post runs inline,
// Go defers work until RunPending, timers fire on Advance and frame callbacks
// fire on Frame. It is meant for tests and is not safe for concurrent use.
type Manual struct {
	now     time.Time
	seq     int
	timers  []*manualTimer
	frames  []*manualTimer
	pending []func()
}

type manualTimer struct {
	due       time.Time
	period    time.Duration
	seq       int
	fn        func()
	cancelled bool
}

// NewManual creates a manual scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	return m.now
}

func (m *Manual) Post(fn func()) {
	fn()
}

func (m *Manual) Go(fn func()) {
	m.pending = append(m.pending, fn)
}

// RunPending runs every function handed to Go so far and reports how many ran.
func (m *Manual) RunPending() int {
	pending := m.pending
	m.pending = nil
	for _, fn := range pending {
		fn()
	}
	return len(pending)
}

// Pending reports how many Go functions are waiting.
func (m *Manual) Pending() int {
	return len(m.pending)
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) CancelFunc {
	return m.addTimer(d, 0, fn)
}

func (m *Manual) Every(d time.Duration, fn func()) CancelFunc {
	return m.addTimer(d, d, fn)
}

func (m *Manual) addTimer(d, period time.Duration, fn func()) CancelFunc {
	m.seq++
	t := &manualTimer{due: m.now.Add(d), period: period, seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return func() { t.cancelled = true }
}

func (m *Manual) RequestFrame(fn func()) CancelFunc {
	m.seq++
	t := &manualTimer{seq: m.seq, fn: fn}
	m.frames = append(m.frames, t)
	return func() { t.cancelled = true }
}

// Frame runs the callbacks requested before this call, as a display frame
// would. Callbacks requested while the frame runs wait for the next Frame.
func (m *Manual) Frame() int {
	frames := m.frames
	m.frames = nil
	ran := 0
	for _, f := range frames {
		if f.cancelled {
			continue
		}
		f.cancelled = true
		f.fn()
		ran++
	}
	return ran
}

// PendingFrames reports frame callbacks that are requested and not cancelled.
func (m *Manual) PendingFrames() int {
	n := 0
	for _, f := range m.frames {
		if !f.cancelled {
			n++
		}
	}
	return n
}

// ActiveTimers reports timers and intervals that can still fire.
func (m *Manual) ActiveTimers() int {
	n := 0
	for _, t := range m.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing due timers in order.
func (m *Manual) Advance(d time.Duration) {
	target := m.now.Add(d)
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.now = next.due
		if next.period > 0 {
			next.due = next.due.Add(next.period)
		} else {
			next.cancelled = true
		}
		next.fn()
	}
	m.now = target
	m.compact()
}

func (m *Manual) nextDue(target time.Time) *manualTimer {
	var next *manualTimer
	for _, t := range m.timers {
		if t.cancelled || t.due.After(target) {
			continue
		}
		if next == nil || t.due.Before(next.due) || (t.due.Equal(next.due) && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (m *Manual) compact() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	m.timers = live
}
