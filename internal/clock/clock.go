// Package clock schedules cancellable delayed actions.
//
// Nothing here is safe for concurrent use unless stated; callers own a single
// event loop and every callback runs on it.
package clock

import (
	"sync/atomic"
	"time"
)

// Timer is a handle to one scheduled action.
type Timer interface {
	// Stop cancels the action and reports whether it was still pending.
	Stop() bool
}

// Scheduler runs fn once after delay unless the returned Timer is stopped first.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Timer
}

// Real schedules on the wall clock. Due callbacks are handed to dispatch so
// they execute on the owner's event loop; a nil dispatch runs them on the
// timer goroutine.
type Real struct {
	dispatch func(func())
}

func NewReal(dispatch func(func())) *Real {
	return &Real{dispatch: dispatch}
}

type realTimer struct {
	t       *time.Timer
	stopped atomic.Bool
	fired   atomic.Bool
}

func (r *Real) Schedule(delay time.Duration, fn func()) Timer {
	rt := &realTimer{}
	run := func() {
		// Stop may land between AfterFunc firing and the dispatched call.
		if rt.stopped.Load() || !rt.fired.CompareAndSwap(false, true) {
			return
		}
		fn()
	}
	rt.t = time.AfterFunc(delay, func() {
		if r.dispatch == nil {
			run()
			return
		}
		r.dispatch(run)
	})
	return rt
}

func (rt *realTimer) Stop() bool {
	rt.t.Stop()
	if rt.fired.Load() {
		return false
	}
	return !rt.stopped.Swap(true)
}
