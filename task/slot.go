// Package task runs delayed work in a slot that holds at most one pending
// task. Scheduling into a busy slot cancels whatever was waiting there.
package task

import (
	"sync"
	"time"
)

// Timer is the part of *time.Timer a Slot needs.
type Timer interface {
	Stop() bool
}

// AfterFunc matches time.AfterFunc and can be swapped out in tests.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

type Slot struct {
	mu      sync.Mutex
	gen     uint64
	timer   Timer
	after   AfterFunc
	pending bool
}

func NewSlot(after AfterFunc) *Slot {
	if after == nil {
		after = realAfterFunc
	}
	return &Slot{after: after}
}

// Handle refers to one scheduled task.
type Handle struct {
	slot *Slot
	gen  uint64
}

// Current reports whether the task is still the slot's latest one. Results
// that travel through an event queue should be checked against it before
// being applied.
func (h Handle) Current() bool {
	if h.slot == nil {
		return false
	}
	h.slot.mu.Lock()
	defer h.slot.mu.Unlock()
	return h.slot.gen == h.gen
}

// Cancel stops the task if it has not run yet and is still current.
func (h Handle) Cancel() bool {
	if h.slot == nil {
		return false
	}
	h.slot.mu.Lock()
	defer h.slot.mu.Unlock()
	if h.slot.gen != h.gen || !h.slot.pending {
		return false
	}
	h.slot.stopLocked()
	return true
}

// Schedule runs fn after delay unless the slot is cancelled or rescheduled
// first. A timer that fires after being superseded is ignored. fn receives
// the same handle Schedule returns.
func (s *Slot) Schedule(delay time.Duration, fn func(Handle)) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	gen := s.gen
	h := Handle{slot: s, gen: gen}
	s.pending = true
	s.timer = s.after(delay, func() {
		s.mu.Lock()
		if s.gen != gen || !s.pending {
			s.mu.Unlock()
			return
		}
		s.pending = false
		s.timer = nil
		s.mu.Unlock()
		fn(h)
	})
	return h
}

// Cancel drops the pending task, if any, and reports whether there was one.
func (s *Slot) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	was := s.pending
	s.stopLocked()
	return was
}

func (s *Slot) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// stopLocked invalidates every outstanding handle.
func (s *Slot) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = false
	s.gen++
}
