package task

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualTimers collects scheduled callbacks so a test decides when they fire.
type manualTimers struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (m *manualTimers) after(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{delay: d, fn: f}
	m.timers = append(m.timers, t)
	return t
}

// fire runs timer i even if it was stopped, like a timer that had already
// fired when Stop was called.
func (m *manualTimers) fire(i int) {
	m.mu.Lock()
	t := m.timers[i]
	m.mu.Unlock()
	t.fn()
}

func TestScheduleRunsOnce(t *testing.T) {
	m := &manualTimers{}
	s := NewSlot(m.after)
	runs := 0

	h := s.Schedule(time.Second, func(Handle) { runs++ })
	assert.True(t, s.Pending())
	require.Len(t, m.timers, 1)
	assert.Equal(t, time.Second, m.timers[0].delay)

	m.fire(0)
	m.fire(0)
	assert.Equal(t, 1, runs)
	assert.False(t, s.Pending())
	assert.True(t, h.Current())
}

func TestRescheduleSupersedesPending(t *testing.T) {
	m := &manualTimers{}
	s := NewSlot(m.after)
	var got []string

	first := s.Schedule(time.Second, func(Handle) { got = append(got, "first") })
	second := s.Schedule(time.Second, func(Handle) { got = append(got, "second") })

	assert.True(t, m.timers[0].stopped)
	assert.False(t, first.Current())
	assert.True(t, second.Current())

	m.fire(0)
	m.fire(1)
	assert.Equal(t, []string{"second"}, got)
}

func TestCancel(t *testing.T) {
	m := &manualTimers{}
	s := NewSlot(m.after)
	ran := false

	h := s.Schedule(time.Second, func(Handle) { ran = true })
	assert.True(t, s.Cancel())
	assert.False(t, s.Cancel())
	assert.False(t, h.Current())

	m.fire(0)
	assert.False(t, ran)
}

func TestHandleCancelIgnoresStaleHandles(t *testing.T) {
	m := &manualTimers{}
	s := NewSlot(m.after)

	old := s.Schedule(time.Second, func(Handle) {})
	s.Schedule(time.Second, func(Handle) {})
	assert.False(t, old.Cancel())
	assert.True(t, s.Pending())

	var zero Handle
	assert.False(t, zero.Current())
	assert.False(t, zero.Cancel())
}

func TestCancelAfterFireInvalidatesHandle(t *testing.T) {
	m := &manualTimers{}
	s := NewSlot(m.after)

	h := s.Schedule(time.Second, func(Handle) {})
	m.fire(0)
	require.True(t, h.Current())

	assert.False(t, s.Cancel(), "nothing pending")
	assert.False(t, h.Current())
}

func TestRealTimer(t *testing.T) {
	s := NewSlot(nil)
	done := make(chan struct{})
	s.Schedule(5*time.Millisecond, func(Handle) { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task never ran")
	}
}
