package gfx

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var face = basicfont.Face7x13

// MeasureText returns the size of text drawn at an integer scale.
func MeasureText(text string, scale int) (int, int) {
	if scale < 1 {
		scale = 1
	}
	w := font.MeasureString(face, text).Ceil()
	h := face.Metrics().Height.Ceil()
	return w * scale, h * scale
}

// RasterizeText renders one line of text in white onto a transparent image
// exactly as large as the text.
func RasterizeText(text string) *image.RGBA {
	w, h := MeasureText(text, 1)
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), h))

	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
	return img
}
