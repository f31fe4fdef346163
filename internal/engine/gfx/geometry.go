package gfx

import (
	"image"

	"github.com/Faultbox/spinview/internal/engine/palette"
)

// Ortho returns a column-major orthographic projection matrix.
func Ortho(left, right, bottom, top, near, far float32) [16]float32 {
	return [16]float32{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}

// ScreenProjection maps window pixels (origin top-left, y down) to clip space.
func ScreenProjection(width, height int) [16]float32 {
	return Ortho(0, float32(width), float32(height), 0, -1, 1)
}

// appendSolidQuad appends two triangles covering r.
// Vertex format: x, y, r, g, b, a (6 floats).
func appendSolidQuad(dst []float32, r image.Rectangle, c palette.Color) []float32 {
	x0, y0 := float32(r.Min.X), float32(r.Min.Y)
	x1, y1 := float32(r.Max.X), float32(r.Max.Y)
	return append(dst,
		x0, y0, c.R, c.G, c.B, c.A,
		x1, y0, c.R, c.G, c.B, c.A,
		x1, y1, c.R, c.G, c.B, c.A,

		x0, y0, c.R, c.G, c.B, c.A,
		x1, y1, c.R, c.G, c.B, c.A,
		x0, y1, c.R, c.G, c.B, c.A,
	)
}

// texturedQuad returns two triangles covering r with the whole texture,
// row 0 of the texture at the top. Vertex format: x, y, u, v (4 floats).
func texturedQuad(r image.Rectangle) [24]float32 {
	x0, y0 := float32(r.Min.X), float32(r.Min.Y)
	x1, y1 := float32(r.Max.X), float32(r.Max.Y)
	return [24]float32{
		x0, y0, 0, 0,
		x1, y0, 1, 0,
		x1, y1, 1, 1,

		x0, y0, 0, 0,
		x1, y1, 1, 1,
		x0, y1, 0, 1,
	}
}

// outlineRects splits the border of r into four non-overlapping bands.
func outlineRects(r image.Rectangle, t int) []image.Rectangle {
	if t <= 0 || r.Empty() {
		return nil
	}
	if 2*t >= r.Dx() || 2*t >= r.Dy() {
		return []image.Rectangle{r}
	}
	return []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t),
		image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y+t, r.Min.X+t, r.Max.Y-t),
		image.Rect(r.Max.X-t, r.Min.Y+t, r.Max.X, r.Max.Y-t),
	}
}
