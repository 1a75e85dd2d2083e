package clock

import (
	"sort"
	"time"
)

// Manual is a virtual clock. Time only moves through Advance or Next, and
// timers due at the same instant fire in the order they were scheduled.
type Manual struct {
	now   time.Duration
	seq   uint64
	queue []*manualTimer
}

type manualTimer struct {
	m    *Manual
	due  time.Duration
	seq  uint64
	fn   func()
	done bool
}

func NewManual() *Manual {
	return &Manual{}
}

// Now is the virtual time elapsed since the clock was created.
func (m *Manual) Now() time.Duration { return m.now }

// Pending is the number of timers that have neither fired nor been stopped.
func (m *Manual) Pending() int { return len(m.queue) }

func (m *Manual) Schedule(delay time.Duration, fn func()) Timer {
	if delay < 0 {
		delay = 0
	}
	m.seq++
	t := &manualTimer{m: m, due: m.now + delay, seq: m.seq, fn: fn}
	m.queue = append(m.queue, t)
	sort.SliceStable(m.queue, func(i, j int) bool {
		if m.queue[i].due == m.queue[j].due {
			return m.queue[i].seq < m.queue[j].seq
		}
		return m.queue[i].due < m.queue[j].due
	})
	return t
}

// Advance moves the clock forward by d, firing every timer that comes due on
// the way, including timers scheduled by callbacks inside the window.
func (m *Manual) Advance(d time.Duration) int {
	target := m.now + d
	fired := 0
	for len(m.queue) > 0 && m.queue[0].due <= target {
		m.fireHead()
		fired++
	}
	m.now = target
	return fired
}

// Next jumps to the earliest pending timer and fires it.
func (m *Manual) Next() bool {
	if len(m.queue) == 0 {
		return false
	}
	m.fireHead()
	return true
}

// RunAll fires timers until none remain or limit callbacks have run.
func (m *Manual) RunAll(limit int) int {
	n := 0
	for n < limit && m.Next() {
		n++
	}
	return n
}

func (m *Manual) fireHead() {
	t := m.queue[0]
	m.queue = m.queue[1:]
	if t.due > m.now {
		m.now = t.due
	}
	t.done = true
	t.fn()
}

func (t *manualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	for i, q := range t.m.queue {
		if q == t {
			t.m.queue = append(t.m.queue[:i], t.m.queue[i+1:]...)
			break
		}
	}
	return true
}
