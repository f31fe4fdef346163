package viewer

import (
	"image"

	"github.com/Faultbox/spinview/internal/engine/palette"
)

// Image is a drawable frame.
type Image interface {
	Size() (w, h int)
}

// Canvas is the drawing surface the viewer renders onto.
type Canvas interface {
	DrawRect(r image.Rectangle, c palette.Color)
	DrawRectOutline(r image.Rectangle, thickness int, c palette.Color)
	// DrawImage draws img into dst with the given opacity (0 to 1).
	DrawImage(img Image, dst image.Rectangle, alpha float32)
	DrawText(text string, x, y int, scale int, c palette.Color)
	MeasureText(text string, scale int) (w, h int)
}

// FrameSet gives the viewer access to its frames. Frames that have not
// loaded, or failed to, report false.
type FrameSet interface {
	Len() int
	Frame(i int) (Image, bool)
}
