package viewer

import (
	"image"
	"testing"
	"time"

	"github.com/Faultbox/spinview/internal/engine/input"
	"github.com/Faultbox/spinview/internal/engine/palette"
	"github.com/Faultbox/spinview/internal/rotation"
)

type stubImage struct{ w, h int }

func (s stubImage) Size() (int, int) { return s.w, s.h }

type stubFrames struct {
	n       int
	missing map[int]bool
}

func (f stubFrames) Len() int { return f.n }

func (f stubFrames) Frame(i int) (Image, bool) {
	if f.missing[i] {
		return nil, false
	}
	return stubImage{w: 1000 + i, h: 800}, true
}

type drawnImage struct {
	img   Image
	dst   image.Rectangle
	alpha float32
}

type recorder struct {
	images []drawnImage
	texts  []string
	rects  int
}

func (r *recorder) DrawRect(image.Rectangle, palette.Color)             { r.rects++ }
func (r *recorder) DrawRectOutline(image.Rectangle, int, palette.Color) {}
func (r *recorder) DrawImage(img Image, dst image.Rectangle, alpha float32) {
	r.images = append(r.images, drawnImage{img, dst, alpha})
}
func (r *recorder) DrawText(text string, _, _ int, _ int, _ palette.Color) {
	r.texts = append(r.texts, text)
}
func (r *recorder) MeasureText(text string, scale int) (int, int) {
	return len(text) * 7 * scale, 13 * scale
}

// clock is a manually advanced time source.
type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type harness struct {
	v   *Viewer
	d   *input.Dispatcher
	clk *clock
}

func newHarness(t *testing.T, frames FrameSet) *harness {
	t.Helper()
	clk := &clock{t: time.Unix(5000, 0)}
	v := New(DefaultConfig(), frames, WithClock(clk.now))
	v.Resize(800)
	d := input.NewDispatcher()
	v.Mount(d)
	return &harness{v: v, d: d, clk: clk}
}

func (h *harness) press(x, y int) {
	h.d.Dispatch(input.Event{Type: input.EventMouseDown, MouseX: x, MouseY: y, Button: 1})
}

func (h *harness) release() {
	h.d.Dispatch(input.Event{Type: input.EventMouseUp, Button: 1})
}

// move dispatches a move and lets its sampling window close.
func (h *harness) move(x int) {
	h.d.Dispatch(input.Event{Type: input.EventMouseMove, MouseX: x, MouseY: h.v.Bounds().Min.Y + 10})
	h.clk.advance(rotation.DefaultSampleInterval)
	h.v.Update(h.clk.now())
}

func TestLayout(t *testing.T) {
	l := ComputeLayout(800, 600, 500, 26)

	want := image.Rect(100, 66, 700, 566)
	if l.Box != want {
		t.Errorf("box = %v, want %v", l.Box, want)
	}
	if l.Content != want.Inset(1) {
		t.Errorf("content = %v, want %v", l.Content, want.Inset(1))
	}
	if l.Title.X != 400 || l.Caption.X != 400 {
		t.Errorf("title/caption not centered: %v %v", l.Title, l.Caption)
	}
	if l.Caption.Y != 586 {
		t.Errorf("caption y = %d, want 586", l.Caption.Y)
	}

	narrow := ComputeLayout(400, 600, 500, 26)
	if narrow.Box.Min.X != 0 {
		t.Errorf("narrow window box x = %d, want 0", narrow.Box.Min.X)
	}
}

func TestFit(t *testing.T) {
	area := image.Rect(10, 20, 610, 520) // 600x500

	tests := []struct {
		name string
		w, h int
		want image.Rectangle
	}{
		{"small image keeps size", 300, 200, image.Rect(160, 20, 460, 220)},
		{"wide image scales to width", 1200, 500, image.Rect(10, 20, 610, 270)},
		{"tall image scales to height", 500, 1000, image.Rect(185, 20, 435, 520)},
		{"exact fit", 600, 500, image.Rect(10, 20, 610, 520)},
		{"empty image", 0, 100, image.Rectangle{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fit(area, tt.w, tt.h); got != tt.want {
				t.Errorf("Fit(%dx%d) = %v, want %v", tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestDragLeftScenario(t *testing.T) {
	h := newHarness(t, stubFrames{n: 32})
	left := h.v.Bounds().Min.X

	h.press(left+110, h.v.Bounds().Min.Y+10)
	for _, rel := range []int{100, 90, 80} {
		h.move(left + rel)
	}

	if h.v.Index() != 3 {
		t.Errorf("index = %d, want 3", h.v.Index())
	}
}

func TestSingleRightSampleWraps(t *testing.T) {
	h := newHarness(t, stubFrames{n: 32})
	left := h.v.Bounds().Min.X

	h.press(left+50, h.v.Bounds().Min.Y+10)
	h.move(left + 60)

	if h.v.Index() != 31 {
		t.Errorf("index = %d, want 31", h.v.Index())
	}
}

func TestPressOutsideIgnoresMoves(t *testing.T) {
	h := newHarness(t, stubFrames{n: 32})
	b := h.v.Bounds()

	h.press(b.Min.X-5, b.Min.Y+10)
	if h.v.Phase() != rotation.Idle {
		t.Fatalf("phase = %v, want idle", h.v.Phase())
	}
	h.move(b.Min.X + 100)
	h.move(b.Min.X + 50)

	if h.v.Index() != 0 {
		t.Errorf("index = %d, want 0", h.v.Index())
	}
}

func TestReleaseOutsideEndsDrag(t *testing.T) {
	h := newHarness(t, stubFrames{n: 32})
	b := h.v.Bounds()

	h.press(b.Min.X+300, b.Min.Y+10)
	h.move(b.Min.X - 200) // far outside the box, still tracked
	if h.v.Index() != 1 {
		t.Fatalf("index = %d, want 1", h.v.Index())
	}

	h.release()
	h.move(b.Min.X + 100)
	h.move(b.Min.X + 50)
	if h.v.Index() != 1 {
		t.Errorf("index = %d after release, want 1", h.v.Index())
	}
}

func TestMovesAreThrottled(t *testing.T) {
	h := newHarness(t, stubFrames{n: 32})
	b := h.v.Bounds()
	h.press(b.Min.X+300, b.Min.Y+10)

	// Five leftward samples inside one window collapse into one step.
	for i := 1; i <= 5; i++ {
		h.d.Dispatch(input.Event{Type: input.EventMouseMove, MouseX: b.Min.X + 300 - i*10})
		h.clk.advance(5 * time.Millisecond)
		h.v.Update(h.clk.now())
	}
	if h.v.Index() != 0 {
		t.Fatalf("index = %d before the window closed, want 0", h.v.Index())
	}

	h.clk.advance(10 * time.Millisecond)
	if !h.v.Update(h.clk.now()) {
		t.Fatal("trailing sample did not change the index")
	}
	if h.v.Index() != 1 {
		t.Errorf("index = %d, want 1", h.v.Index())
	}
}

func TestSampleDeliveredAfterReleaseIsIgnored(t *testing.T) {
	h := newHarness(t, stubFrames{n: 32})
	b := h.v.Bounds()

	h.press(b.Min.X+300, b.Min.Y+10)
	h.d.Dispatch(input.Event{Type: input.EventMouseMove, MouseX: b.Min.X + 200})
	h.release()
	h.clk.advance(time.Second)
	h.v.Update(h.clk.now())

	if h.v.Index() != 0 {
		t.Errorf("index = %d, want 0", h.v.Index())
	}
}

func TestUnmountDetachesListeners(t *testing.T) {
	h := newHarness(t, stubFrames{n: 32})
	b := h.v.Bounds()

	if !h.v.Mounted() {
		t.Fatal("expected mounted")
	}
	h.v.Mount(h.d)
	if h.d.Count(input.EventMouseMove) != 1 {
		t.Errorf("double mount registered %d move listeners", h.d.Count(input.EventMouseMove))
	}

	h.press(b.Min.X+300, b.Min.Y+10)
	h.d.Dispatch(input.Event{Type: input.EventMouseMove, MouseX: b.Min.X + 200})
	h.v.Unmount()

	for _, et := range []input.EventType{input.EventMouseDown, input.EventMouseUp, input.EventMouseMove} {
		if n := h.d.Count(et); n != 0 {
			t.Errorf("%v listeners after unmount = %d", et, n)
		}
	}

	h.clk.advance(time.Second)
	if h.v.Update(h.clk.now()) {
		t.Error("pending sample survived unmount")
	}
	h.move(b.Min.X + 100)
	if h.v.Index() != 0 {
		t.Errorf("index = %d, want 0", h.v.Index())
	}
	h.v.Unmount()
}

func TestDrawShowsExactlyCurrentFrame(t *testing.T) {
	h := newHarness(t, stubFrames{n: 32})
	b := h.v.Bounds()
	h.press(b.Min.X+300, b.Min.Y+10)
	for i := 1; i <= 5; i++ {
		h.move(b.Min.X + 300 - i)
	}

	rec := &recorder{}
	h.v.Draw(rec)

	if len(rec.images) != 32 {
		t.Fatalf("drew %d frames, want 32", len(rec.images))
	}
	visible := 0
	for i, d := range rec.images {
		switch d.alpha {
		case 1:
			visible++
			if i != h.v.Index() {
				t.Errorf("frame %d visible, current is %d", i, h.v.Index())
			}
		case 0:
		default:
			t.Errorf("frame %d alpha = %f", i, d.alpha)
		}
		if !d.dst.In(h.v.Layout().Content) {
			t.Errorf("frame %d drawn at %v outside content %v", i, d.dst, h.v.Layout().Content)
		}
	}
	if visible != 1 {
		t.Errorf("%d visible frames, want 1", visible)
	}
	if len(rec.texts) != 2 || rec.texts[0] != "Product Preview" {
		t.Errorf("texts = %q", rec.texts)
	}
}

func TestDrawSkipsMissingFrames(t *testing.T) {
	frames := stubFrames{n: 32, missing: map[int]bool{0: true, 7: true}}
	h := newHarness(t, frames)

	rec := &recorder{}
	h.v.Draw(rec)

	if len(rec.images) != 30 {
		t.Errorf("drew %d frames, want 30", len(rec.images))
	}
	for _, d := range rec.images {
		if d.alpha != 0 {
			t.Error("a frame is visible while the current one has not loaded")
		}
	}
}
