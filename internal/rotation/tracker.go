// Package rotation maps horizontal pointer drags to a frame index.
//
// A Tracker is a two-phase state machine (idle, dragging). While dragging,
// every processed move sample steps the index by exactly one frame in the
// direction of travel: left advances, right goes back. Distance is ignored.
package rotation

import "image"

// DefaultFrames is the number of frames in a full turn.
const DefaultFrames = 32

// Phase is the drag session phase.
type Phase int

const (
	Idle Phase = iota
	Dragging
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Tracker owns the current frame index and the drag session.
// It is not safe for concurrent use; all calls come from the event loop.
type Tracker struct {
	frames int
	index  int
	phase  Phase
	lastX  int
}

// NewTracker creates a tracker for a sequence of n frames starting at index 0.
// n below 1 is treated as 1.
func NewTracker(n int) *Tracker {
	if n < 1 {
		n = 1
	}
	return &Tracker{frames: n}
}

// Index returns the current frame index in [0, Frames()).
func (t *Tracker) Index() int { return t.index }

// Frames returns the sequence length.
func (t *Tracker) Frames() int { return t.frames }

// Phase returns the current drag phase.
func (t *Tracker) Phase() Phase { return t.phase }

// Dragging reports whether a drag session is active.
func (t *Tracker) Dragging() bool { return t.phase == Dragging }

// Press starts a drag session if p lies within bounds (all edges inclusive).
// The baseline is p's horizontal offset from the left edge of bounds.
func (t *Tracker) Press(bounds image.Rectangle, p image.Point) bool {
	if !Contains(bounds, p) {
		return false
	}
	t.lastX = p.X - bounds.Min.X
	t.phase = Dragging
	return true
}

// Release ends the drag session. It reports whether a session was active.
func (t *Tracker) Release() bool {
	if t.phase != Dragging {
		return false
	}
	t.phase = Idle
	return true
}

// Move processes one horizontal sample in window coordinates and reports
// whether the index changed. Samples outside a drag session are ignored.
func (t *Tracker) Move(bounds image.Rectangle, x int) bool {
	if t.phase != Dragging {
		return false
	}
	rel := x - bounds.Min.X
	if rel == t.lastX {
		return false
	}
	if rel < t.lastX {
		t.step(1)
	} else {
		t.step(-1)
	}
	t.lastX = rel
	return true
}

// step moves the index by delta, wrapping around the sequence.
func (t *Tracker) step(delta int) {
	t.index = (t.index + delta%t.frames + t.frames) % t.frames
}

// Contains reports whether p lies inside r, counting points on the right and
// bottom edges as inside.
func Contains(r image.Rectangle, p image.Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}
