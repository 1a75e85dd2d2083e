package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestManualFiresInDueOrder(t *testing.T) {
	m := NewManual()
	var got []string
	m.Schedule(300*time.Millisecond, func() { got = append(got, "c") })
	m.Schedule(100*time.Millisecond, func() { got = append(got, "a") })
	m.Schedule(100*time.Millisecond, func() { got = append(got, "b") })

	require.Equal(t, 2, m.Advance(200*time.Millisecond))
	require.Equal(t, []string{"a", "b"}, got)
	require.Equal(t, 200*time.Millisecond, m.Now())
	require.Equal(t, 1, m.Pending())

	require.True(t, m.Next())
	require.Equal(t, []string{"a", "b", "c"}, got)
	require.Equal(t, 300*time.Millisecond, m.Now())
	require.False(t, m.Next())
}

func TestManualStopPreventsFire(t *testing.T) {
	m := NewManual()
	fired := false
	tm := m.Schedule(time.Second, func() { fired = true })

	require.True(t, tm.Stop())
	require.False(t, tm.Stop())
	m.Advance(2 * time.Second)
	require.False(t, fired)
	require.Zero(t, m.Pending())
}

func TestManualAdvanceRunsNestedTimersInWindow(t *testing.T) {
	m := NewManual()
	var got []time.Duration
	m.Schedule(100*time.Millisecond, func() {
		got = append(got, m.Now())
		m.Schedule(50*time.Millisecond, func() { got = append(got, m.Now()) })
		m.Schedule(time.Second, func() { got = append(got, m.Now()) })
	})

	m.Advance(500 * time.Millisecond)
	require.Equal(t, []time.Duration{100 * time.Millisecond, 150 * time.Millisecond}, got)
	require.Equal(t, 1, m.Pending())
}

func TestRealDispatchesThroughLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	loop := make(chan func(), 1)
	r := NewReal(func(fn func()) { loop <- fn })
	done := make(chan struct{})
	r.Schedule(5*time.Millisecond, func() { close(done) })

	select {
	case fn := <-loop:
		fn()
	case <-time.After(time.Second):
		t.Fatal("timer never dispatched")
	}
	<-done
}

func TestRealStopAfterDispatchSkipsCallback(t *testing.T) {
	defer goleak.VerifyNone(t)

	loop := make(chan func(), 1)
	r := NewReal(func(fn func()) { loop <- fn })
	fired := false
	tm := r.Schedule(time.Millisecond, func() { fired = true })

	fn := <-loop
	require.True(t, tm.Stop())
	fn()
	require.False(t, fired)
}

func TestRealStopBeforeDueLeavesNoGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := NewReal(nil)
	tm := r.Schedule(time.Hour, func() { t.Error("stopped timer fired") })
	require.True(t, tm.Stop())
}
