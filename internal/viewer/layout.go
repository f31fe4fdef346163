package viewer

import "image"

// Page geometry, in window pixels.
const (
	titleTop    = 20
	titleScale  = 2
	glyphHeight = 13 // basicfont.Face7x13
	boxMargin   = 20
	captionGap  = 20
	borderWidth = 1
)

// Layout places the title, the viewer box and the caption in the window.
type Layout struct {
	Title   image.Point // top center of the title line
	Box     image.Rectangle
	Content image.Rectangle // Box minus its border; frames are fitted here
	Caption image.Point     // top center of the caption line
}

// ComputeLayout lays out a box of boxW x boxH centered horizontally in a
// window winW pixels wide, below a title line of titleH pixels. The page is
// anchored to the top; window height does not move anything.
func ComputeLayout(winW, boxW, boxH, titleH int) Layout {
	left := (winW - boxW) / 2
	if left < 0 {
		left = 0
	}
	top := titleTop + titleH + boxMargin
	box := image.Rect(left, top, left+boxW, top+boxH)

	return Layout{
		Title:   image.Pt(winW/2, titleTop),
		Box:     box,
		Content: box.Inset(borderWidth),
		Caption: image.Pt(winW/2, box.Max.Y+captionGap),
	}
}

// Fit returns where an image of w x h is drawn inside area: scaled down
// (never up) to fit while keeping its aspect ratio, horizontally centered
// and aligned to the top. Returns an empty rectangle for empty input.
func Fit(area image.Rectangle, w, h int) image.Rectangle {
	if w <= 0 || h <= 0 || area.Empty() {
		return image.Rectangle{}
	}

	aw, ah := area.Dx(), area.Dy()
	dw, dh := w, h
	if dw > aw || dh > ah {
		scale := float64(aw) / float64(w)
		if hs := float64(ah) / float64(h); hs < scale {
			scale = hs
		}
		dw = int(float64(w)*scale + 0.5)
		dh = int(float64(h)*scale + 0.5)
		dw = min(max(dw, 1), aw)
		dh = min(max(dh, 1), ah)
	}

	x := area.Min.X + (aw-dw)/2
	return image.Rect(x, area.Min.Y, x+dw, area.Min.Y+dh)
}
