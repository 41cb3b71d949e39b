package window

import (
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
)

// FrameInterval is the delay between a surface event and the recompute it
// schedules. Events arriving in between are folded into the same frame.
const FrameInterval = time.Second / 60

var schedulerIDs atomic.Int64

// FrameMsg asks the owning Controller to recompute its window.
type FrameMsg struct {
	ID  int64
	Gen uint64
}

// Scheduler is a single-flight frame request. At most one FrameMsg is in
// flight per scheduler; cancelling invalidates any tick that is still queued.
type Scheduler struct {
	id       int64
	gen      uint64
	pending  bool
	interval time.Duration
}

// NewScheduler returns a scheduler with its own id.
func NewScheduler() Scheduler {
	return Scheduler{
		id:       schedulerIDs.Add(1),
		interval: FrameInterval,
	}
}

// Request schedules a frame. It returns nil when one is already pending.
func (s *Scheduler) Request() tea.Cmd {
	if s.pending {
		return nil
	}
	s.pending = true
	id, gen := s.id, s.gen
	return tea.Tick(s.interval, func(time.Time) tea.Msg {
		return FrameMsg{ID: id, Gen: gen}
	})
}

// Accept reports whether msg is the live frame for this scheduler and, if so,
// clears the pending flag so the next event can schedule another.
func (s *Scheduler) Accept(msg FrameMsg) bool {
	if !s.pending || msg.ID != s.id || msg.Gen != s.gen {
		return false
	}
	s.pending = false
	return true
}

// Cancel drops the pending frame, if any.
func (s *Scheduler) Cancel() {
	s.gen++
	s.pending = false
}

// Pending reports whether a frame is scheduled and not yet accepted.
func (s *Scheduler) Pending() bool { return s.pending }

// Owns reports whether msg was issued by this scheduler, live or not.
func (s *Scheduler) Owns(msg FrameMsg) bool { return msg.ID == s.id }
