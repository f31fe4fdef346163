// Package gfx provides the OpenGL 2D renderer for the viewer page:
// solid rectangles, textured quads with opacity, and text labels.
package gfx

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/spinview/internal/engine/palette"
)

// Renderer draws in window pixel coordinates with the origin at the top left.
// It must only be used from the thread that owns the GL context.
type Renderer struct {
	width  int
	height int
	proj   [16]float32

	solid    *Program
	textured *Program

	solidVAO uint32
	solidVBO uint32
	quadVAO  uint32
	quadVBO  uint32

	solidVertices []float32

	labels map[string]*Texture

	log *zap.Logger
}

// New initializes OpenGL and creates a renderer for a window of the given size.
// Must be called after the GL context has been created.
func New(width, height int, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	r := &Renderer{
		solidVertices: make([]float32, 0, 256),
		labels:        make(map[string]*Texture),
		log:           log,
	}

	var err error
	r.solid, err = CompileProgram(solidVertexShader, solidFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("solid program: %w", err)
	}
	r.textured, err = CompileProgram(textureVertexShader, textureFragmentShader)
	if err != nil {
		r.solid.Delete()
		return nil, fmt.Errorf("texture program: %w", err)
	}

	r.createBuffers()
	r.Resize(width, height)

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	return r, nil
}

func (r *Renderer) createBuffers() {
	// Solid quads: pos(2) + color(4) = 6 floats
	gl.GenVertexArrays(1, &r.solidVAO)
	gl.BindVertexArray(r.solidVAO)
	gl.GenBuffers(1, &r.solidVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.solidVBO)
	stride := int32(6 * 4)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, stride, 2*4)
	gl.EnableVertexAttribArray(1)

	// Textured quads: pos(2) + uv(2) = 4 floats
	gl.GenVertexArrays(1, &r.quadVAO)
	gl.BindVertexArray(r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	stride = int32(4 * 4)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 2*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Resize updates the logical screen size used for the projection.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
	r.proj = ScreenProjection(width, height)
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// SetViewport sets the GL viewport to the drawable size in physical pixels,
// which differs from the window size on high-DPI displays.
func (r *Renderer) SetViewport(drawableW, drawableH int) {
	gl.Viewport(0, 0, int32(drawableW), int32(drawableH))
}

// Size returns the logical screen size.
func (r *Renderer) Size() (int, int) { return r.width, r.height }

// Begin clears the screen and starts a frame.
func (r *Renderer) Begin(clear palette.Color) {
	r.solidVertices = r.solidVertices[:0]
	gl.ClearColor(clear.R, clear.G, clear.B, clear.A)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// End flushes anything still queued.
func (r *Renderer) End() {
	r.flushSolids()
}

// DrawRect queues a filled rectangle.
func (r *Renderer) DrawRect(rect image.Rectangle, c palette.Color) {
	r.solidVertices = appendSolidQuad(r.solidVertices, rect, c)
}

// DrawRectOutline queues a rectangle border of the given thickness.
func (r *Renderer) DrawRectOutline(rect image.Rectangle, thickness int, c palette.Color) {
	for _, band := range outlineRects(rect, thickness) {
		r.solidVertices = appendSolidQuad(r.solidVertices, band, c)
	}
}

// DrawTexture draws tex stretched over dst with the given opacity.
// Queued rectangles are flushed first so they stay underneath.
func (r *Renderer) DrawTexture(tex *Texture, dst image.Rectangle, alpha float32) {
	r.drawTinted(tex, dst, palette.White.WithAlpha(alpha))
}

// DrawText draws one line of text with its top-left corner at (x, y).
func (r *Renderer) DrawText(text string, x, y int, scale int, c palette.Color) {
	if text == "" {
		return
	}
	if scale < 1 {
		scale = 1
	}
	label, err := r.label(text)
	if err != nil {
		r.log.Warn("text label failed", zap.String("text", text), zap.Error(err))
		return
	}
	w, h := label.Size()
	r.drawTinted(label, image.Rect(x, y, x+w*scale, y+h*scale), c)
}

// MeasureText returns the size of text at the given scale.
func (r *Renderer) MeasureText(text string, scale int) (int, int) {
	return MeasureText(text, scale)
}

// label returns the cached texture for a line of text, rasterizing it on first use.
func (r *Renderer) label(text string) (*Texture, error) {
	if tex, ok := r.labels[text]; ok {
		return tex, nil
	}
	tex, err := NewTexture(RasterizeText(text), false)
	if err != nil {
		return nil, err
	}
	r.labels[text] = tex
	return tex, nil
}

func (r *Renderer) drawTinted(tex *Texture, dst image.Rectangle, tint palette.Color) {
	if tex == nil || tex.ID == 0 || dst.Empty() {
		return
	}
	r.flushSolids()

	gl.UseProgram(r.textured.ID)
	gl.UniformMatrix4fv(r.textured.Uniform("uProjection"), 1, false, &r.proj[0])
	gl.Uniform1i(r.textured.Uniform("uTexture"), 0)
	gl.Uniform4f(r.textured.Uniform("uTint"), tint.R, tint.G, tint.B, tint.A)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex.ID)

	verts := texturedQuad(dst)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, unsafe.Pointer(&verts[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
}

func (r *Renderer) flushSolids() {
	if len(r.solidVertices) == 0 {
		return
	}
	gl.UseProgram(r.solid.ID)
	gl.UniformMatrix4fv(r.solid.Uniform("uProjection"), 1, false, &r.proj[0])

	gl.BindVertexArray(r.solidVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.solidVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.solidVertices)*4, unsafe.Pointer(&r.solidVertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.solidVertices)/6))

	gl.BindVertexArray(0)
	gl.UseProgram(0)
	r.solidVertices = r.solidVertices[:0]
}

// ReadPixels reads back the framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

// Close releases renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, tex := range r.labels {
		tex.Delete()
	}
	r.labels = nil
	if r.solidVAO != 0 {
		gl.DeleteVertexArrays(1, &r.solidVAO)
	}
	if r.solidVBO != 0 {
		gl.DeleteBuffers(1, &r.solidVBO)
	}
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
	}
	if r.quadVBO != 0 {
		gl.DeleteBuffers(1, &r.quadVBO)
	}
	r.solid.Delete()
	r.textured.Delete()
}
