package core

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW and the GL context must stay on the main OS thread.
	runtime.LockOSThread()
}

type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string

	onResize []func(width, height int)
	onKey    []func(key int)
}

type WindowConfig struct {
	Width      int
	Height     int
	Title      string
	Resizable  bool
	VSync      bool
	Fullscreen bool
	Samples    int
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:     1280,
		Height:    720,
		Title:     "Kusama",
		Resizable: true,
		VSync:     true,
		Samples:   4,
	}
}

// NewWindow opens a window with an OpenGL 4.1 core context and makes the
// context current on the calling thread.
func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))
	glfw.WindowHint(glfw.Samples, config.Samples)

	var monitor *glfw.Monitor
	if config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()
	glfw.SwapInterval(boolToInt(config.VSync))

	window := &Window{
		Handle: handle,
		Width:  config.Width,
		Height: config.Height,
		Title:  config.Title,
	}

	handle.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		window.Width = width
		window.Height = height
		for _, cb := range window.onResize {
			cb(width, height)
		}
	})
	handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		for _, cb := range window.onKey {
			cb(int(key))
		}
	})

	return window, nil
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) Close() {
	w.Handle.SetShouldClose(true)
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

// GetFramebufferSize returns the drawable size in pixels, which differs
// from Width/Height on high-DPI displays.
func (w *Window) GetFramebufferSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

// DevicePixelRatio is framebuffer pixels per window unit.
func (w *Window) DevicePixelRatio() float32 {
	fbw, _ := w.Handle.GetFramebufferSize()
	if w.Width == 0 {
		return 1
	}
	return float32(fbw) / float32(w.Width)
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func (w *Window) SetTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

func (w *Window) IsMouseButtonPressed(button int) bool {
	return w.Handle.GetMouseButton(glfw.MouseButton(button)) == glfw.Press
}

func (w *Window) GetCursorPos() (float64, float64) {
	return w.Handle.GetCursorPos()
}

// OnResize registers a handler for window size changes (in window units).
func (w *Window) OnResize(cb func(width, height int)) {
	w.onResize = append(w.onResize, cb)
}

// OnKeyPress registers a handler called once per key press.
func (w *Window) OnKeyPress(cb func(key int)) {
	w.onKey = append(w.onKey, cb)
}

// ScrollCallback is the type for scroll event handlers
type ScrollCallback func(xoff, yoff float64)

func (w *Window) SetScrollCallback(cb ScrollCallback) {
	w.Handle.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		cb(xoff, yoff)
	})
}

// Time is seconds since GLFW was initialised.
func Time() float64 {
	return glfw.GetTime()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

const (
	KeyEscape = int(glfw.KeyEscape)
	KeyF5     = int(glfw.KeyF5)

	MouseButtonLeft = int(glfw.MouseButtonLeft)
)
