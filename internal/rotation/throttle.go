package rotation

import (
	"image"
	"time"
)

// DefaultSampleInterval bounds how often move samples reach the tracker.
const DefaultSampleInterval = 30 * time.Millisecond

// Throttle is a trailing-edge rate limiter for pointer samples.
//
// The first sample after a quiet period opens a window of Interval. Samples
// arriving inside the window replace the pending one. Once the window has
// elapsed, Due hands out the most recent sample exactly once. There is no
// leading-edge delivery.
type Throttle struct {
	interval time.Duration
	pending  bool
	deadline time.Time
	sample   image.Point
}

// NewThrottle creates a throttle. A non-positive interval delivers every
// pending sample on the next Due call.
func NewThrottle(interval time.Duration) *Throttle {
	if interval < 0 {
		interval = 0
	}
	return &Throttle{interval: interval}
}

// Interval returns the window length.
func (t *Throttle) Interval() time.Duration { return t.interval }

// Offer records a sample observed at now.
func (t *Throttle) Offer(now time.Time, p image.Point) {
	if !t.pending {
		t.pending = true
		t.deadline = now.Add(t.interval)
	}
	t.sample = p
}

// Due returns the trailing sample if its window has closed by now.
func (t *Throttle) Due(now time.Time) (image.Point, bool) {
	if !t.pending || now.Before(t.deadline) {
		return image.Point{}, false
	}
	t.pending = false
	return t.sample, true
}

// Pending reports whether a sample is waiting for its window to close.
func (t *Throttle) Pending() bool { return t.pending }

// Reset drops any pending sample.
func (t *Throttle) Reset() {
	t.pending = false
	t.sample = image.Point{}
}
