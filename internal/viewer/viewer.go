// Package viewer implements the rotation viewer: a fixed box showing one
// frame of a product turn, rotated by dragging the mouse horizontally.
//
// All frames are drawn stacked at the same position every frame; only the
// current one is opaque. Nothing is created or destroyed when the index
// changes.
package viewer

import (
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/spinview/internal/engine/input"
	"github.com/Faultbox/spinview/internal/engine/palette"
	"github.com/Faultbox/spinview/internal/rotation"
)

// Config holds viewer settings.
type Config struct {
	Width          int
	Height         int
	Title          string
	Caption        string
	SampleInterval time.Duration
}

// DefaultConfig returns the standard product preview page.
func DefaultConfig() Config {
	return Config{
		Width:          600,
		Height:         500,
		Title:          "Product Preview",
		Caption:        "Click and drag to rotate the product",
		SampleInterval: rotation.DefaultSampleInterval,
	}
}

// Viewer is the rotation viewer component.
type Viewer struct {
	cfg      Config
	frames   FrameSet
	tracker  *rotation.Tracker
	throttle *rotation.Throttle
	layout   Layout
	now      func() time.Time
	detach   []func()
	log      *zap.Logger
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(v *Viewer) { v.now = now }
}

// WithLogger sets the viewer logger.
func WithLogger(log *zap.Logger) Option {
	return func(v *Viewer) { v.log = log }
}

// New creates a viewer over frames. Call Resize before the first event so
// the box has a position.
func New(cfg Config, frames FrameSet, opts ...Option) *Viewer {
	v := &Viewer{
		cfg:      cfg,
		frames:   frames,
		tracker:  rotation.NewTracker(frames.Len()),
		throttle: rotation.NewThrottle(cfg.SampleInterval),
		now:      time.Now,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Mount attaches the viewer's window-wide pointer listeners to d.
// Mounting an already mounted viewer does nothing.
func (v *Viewer) Mount(d *input.Dispatcher) {
	if v.Mounted() {
		return
	}
	v.detach = append(v.detach,
		d.Listen(input.EventMouseDown, v.onPress),
		d.Listen(input.EventMouseUp, v.onRelease),
		d.Listen(input.EventMouseMove, v.onMove),
	)
	v.log.Debug("viewer mounted")
}

// Unmount detaches the listeners and drops any pending move sample.
func (v *Viewer) Unmount() {
	if !v.Mounted() {
		return
	}
	for _, remove := range v.detach {
		remove()
	}
	v.detach = nil
	v.throttle.Reset()
	v.log.Debug("viewer unmounted")
}

// Mounted reports whether listeners are attached.
func (v *Viewer) Mounted() bool { return len(v.detach) > 0 }

// Resize recomputes the page layout for a window w pixels wide.
func (v *Viewer) Resize(w int) {
	v.layout = ComputeLayout(w, v.cfg.Width, v.cfg.Height, glyphHeight*titleScale)
}

// Layout returns the current page layout.
func (v *Viewer) Layout() Layout { return v.layout }

// Bounds returns the viewer box in window coordinates.
func (v *Viewer) Bounds() image.Rectangle { return v.layout.Box }

// Index returns the current frame index.
func (v *Viewer) Index() int { return v.tracker.Index() }

// Phase returns the drag phase.
func (v *Viewer) Phase() rotation.Phase { return v.tracker.Phase() }

func (v *Viewer) onPress(e input.Event) {
	if v.tracker.Press(v.layout.Box, image.Pt(e.MouseX, e.MouseY)) {
		v.log.Debug("drag started", zap.Int("x", e.MouseX), zap.Int("index", v.tracker.Index()))
	}
}

func (v *Viewer) onRelease(input.Event) {
	if v.tracker.Release() {
		v.log.Debug("drag ended", zap.Int("index", v.tracker.Index()))
	}
}

func (v *Viewer) onMove(e input.Event) {
	v.throttle.Offer(v.now(), image.Pt(e.MouseX, e.MouseY))
}

// Update feeds a due move sample to the drag state machine. Call it once
// per loop iteration after dispatching input. Reports whether the frame
// index changed.
func (v *Viewer) Update(now time.Time) bool {
	p, ok := v.throttle.Due(now)
	if !ok {
		return false
	}
	return v.tracker.Move(v.layout.Box, p.X)
}

// Draw renders the page: title, box, every frame stacked with only the
// current one visible, and the caption.
func (v *Viewer) Draw(c Canvas) {
	l := v.layout

	if v.cfg.Title != "" {
		tw, _ := c.MeasureText(v.cfg.Title, titleScale)
		c.DrawText(v.cfg.Title, l.Title.X-tw/2, l.Title.Y, titleScale, palette.Title)
	}

	c.DrawRect(l.Box, palette.Background)
	c.DrawRectOutline(l.Box, borderWidth, palette.Border)

	current := v.tracker.Index()
	for i := 0; i < v.frames.Len(); i++ {
		img, ok := v.frames.Frame(i)
		if !ok {
			continue
		}
		w, h := img.Size()
		dst := Fit(l.Content, w, h)
		if dst.Empty() {
			continue
		}
		var alpha float32
		if i == current {
			alpha = 1
		}
		c.DrawImage(img, dst, alpha)
	}

	if v.cfg.Caption != "" {
		cw, _ := c.MeasureText(v.cfg.Caption, 1)
		c.DrawText(v.cfg.Caption, l.Caption.X-cw/2, l.Caption.Y, 1, palette.Caption)
	}
}
