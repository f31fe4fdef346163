// Package app runs the viewer window: it owns the window, renderer and
// input, preloads the frames, and drives the viewer once per frame.
package app

import (
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/spinview/internal/config"
	"github.com/Faultbox/spinview/internal/engine/debug"
	"github.com/Faultbox/spinview/internal/engine/gfx"
	"github.com/Faultbox/spinview/internal/engine/input"
	"github.com/Faultbox/spinview/internal/engine/palette"
	"github.com/Faultbox/spinview/internal/engine/window"
	"github.com/Faultbox/spinview/internal/frames"
	"github.com/Faultbox/spinview/internal/viewer"
)

// App is the running viewer application.
type App struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *gfx.Renderer
	input    *input.Input
	dispatch *input.Dispatcher
	detach   []func()

	results <-chan frames.Result
	seq     *frames.Sequence[*gfx.Texture]
	loaded  progress

	view        *viewer.Viewer
	screenshots *debug.Screenshots
	capture     bool

	log *zap.Logger
}

// New creates the window and GL state and starts preloading frames.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		cfg:         cfg,
		dispatch:    input.NewDispatcher(),
		screenshots: debug.NewScreenshots("screenshots", "spinview"),
		log:         log,
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window just created
	w, h := a.window.Size()
	a.renderer, err = gfx.New(w, h, log.Named("gfx"))
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	a.renderer.SetViewport(a.window.DrawableSize())

	a.input = input.New(true, log.Named("input"))

	src := frames.Source{BaseURL: cfg.Viewer.BaseURL, Count: cfg.Viewer.Frames}
	a.seq = frames.NewSequence(src, a.upload)
	a.loaded = progress{total: src.Count}

	a.view = viewer.New(viewer.Config{
		Width:          cfg.Viewer.Width,
		Height:         cfg.Viewer.Height,
		Title:          cfg.Viewer.Title,
		Caption:        cfg.Viewer.Caption,
		SampleInterval: cfg.Viewer.SampleInterval,
	}, frameSet[*gfx.Texture]{seq: a.seq}, viewer.WithLogger(log.Named("viewer")))
	a.view.Resize(w)

	loader := frames.NewLoader(http.DefaultClient, log.Named("loader"))
	a.results = loader.Preload(src)

	a.detach = append(a.detach,
		a.dispatch.Listen(input.EventWindowResize, a.onResize),
		a.dispatch.Listen(input.EventKeyDown, a.onKey),
	)

	log.Info("app initialized",
		zap.String("base_url", src.BaseURL),
		zap.Int("frames", src.Count),
	)
	return a, nil
}

// upload turns a decoded frame into a texture. Runs on the render thread.
func (a *App) upload(r frames.Result) (*gfx.Texture, error) {
	tex, err := gfx.NewTexture(r.Image, true)
	if err != nil {
		a.log.Warn("frame upload failed", zap.Int("index", r.Index), zap.Error(err))
		return nil, err
	}
	return tex, nil
}

// Run drives the frame loop until the window closes or ESC is pressed.
func (a *App) Run() error {
	a.running = true
	a.view.Mount(a.dispatch)

	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting main loop")

	for a.running {
		if a.input.Update() {
			a.running = false
			break
		}
		a.dispatch.DispatchAll(a.input.Events())

		a.pollFrames()

		if a.view.Update(time.Now()) {
			a.log.Debug("frame changed", zap.Int("index", a.view.Index()))
		}

		a.render()

		if a.capture {
			a.capture = false
			a.screenshot()
		}

		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// pollFrames moves finished loads into the sequence without blocking.
func (a *App) pollFrames() {
	if a.results == nil {
		return
	}
	if a.seq.Drain(a.results) == 0 {
		return
	}
	if !a.loaded.update(a.seq.Loaded(), a.seq.Failed()) {
		return
	}
	a.log.Debug("frames loaded",
		zap.Int("loaded", a.loaded.loaded),
		zap.Int("total", a.loaded.total),
	)
	if a.loaded.settled() && !a.loaded.reported {
		a.loaded.reported = true
		a.results = nil
		a.log.Info(fmt.Sprintf("frames loaded %d/%d", a.loaded.loaded, a.loaded.total))
		if a.loaded.failed > 0 {
			a.log.Warn("some frames failed to load", zap.Int("failed", a.loaded.failed))
		}
	}
}

func (a *App) render() {
	a.renderer.Begin(palette.White)
	a.view.Draw(canvas{a.renderer})
	a.renderer.End()
}

func (a *App) onResize(e input.Event) {
	a.renderer.Resize(e.Width, e.Height)
	a.renderer.SetViewport(a.window.DrawableSize())
	a.view.Resize(e.Width)
}

func (a *App) onKey(e input.Event) {
	switch e.Key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false
	case sdl.SCANCODE_F12:
		a.capture = true
	}
}

// screenshot saves the back buffer that was just drawn.
func (a *App) screenshot() {
	w, h := a.window.DrawableSize()
	path, err := a.screenshots.CaptureFromPixels(a.renderer.ReadPixels(w, h), w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases everything in reverse order of creation.
func (a *App) Close() {
	a.log.Info("closing app")

	a.view.Unmount()
	for _, remove := range a.detach {
		remove()
	}
	a.detach = nil

	a.seq.Each(func(_ int, tex *gfx.Texture) {
		tex.Delete()
	})

	a.renderer.Close()
	a.window.Close()
}

// canvas adapts the GL renderer to the viewer's drawing surface.
type canvas struct {
	*gfx.Renderer
}

func (c canvas) DrawImage(img viewer.Image, dst image.Rectangle, alpha float32) {
	if tex, ok := img.(*gfx.Texture); ok {
		c.DrawTexture(tex, dst, alpha)
	}
}
