// Package window is the native drawing surface: a GLFW window with an
// OpenGL 4.1 core context, a frame-callback queue and visibility
// reporting.
package window

import (
	"fmt"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/halcyonpartners/backdrop/internal/frame"
)

type WindowError struct {
	msg string
	err error
}

func (e *WindowError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *WindowError) Unwrap() error {
	return e.err
}

type observer struct {
	threshold float64
	fn        func(bool)
	visible   bool
}

type Window struct {
	win   *glfw.Window
	loop  *frame.Loop
	start time.Time

	resize    map[int]func(width, height int)
	observers map[int]*observer
	nextID    int
	presented bool
	interval  time.Duration
}

func contextHints() {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
}

// Probe reports whether a 4.1 core context can be created at all. It leaves
// GLFW terminated.
func Probe() bool {
	if err := glfw.Init(); err != nil {
		return false
	}
	defer glfw.Terminate()

	contextHints()
	glfw.WindowHint(glfw.Visible, glfw.False)
	win, err := glfw.CreateWindow(16, 16, "probe", nil, nil)
	if err != nil {
		return false
	}
	win.Destroy()
	return true
}

// New opens a window and makes its context current on the calling thread,
// which must stay locked to its OS thread.
func New(title string, width, height int) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, &WindowError{"failed to initialise GLFW", err}
	}

	contextHints()
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)
	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, &WindowError{"failed to create window", err}
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	w := &Window{
		win:       win,
		loop:      frame.NewLoop(),
		start:     time.Now(),
		resize:    map[int]func(int, int){},
		observers: map[int]*observer{},
		interval:  refreshInterval(),
	}
	win.SetSizeCallback(func(*glfw.Window, int, int) { w.notifyResize() })
	win.SetFramebufferSizeCallback(func(*glfw.Window, int, int) { w.notifyResize() })
	win.SetContentScaleCallback(func(*glfw.Window, float32, float32) { w.notifyResize() })
	return w, nil
}

func refreshInterval() time.Duration {
	hz := 60
	if m := glfw.GetPrimaryMonitor(); m != nil {
		if mode := m.GetVideoMode(); mode != nil && mode.RefreshRate > 0 {
			hz = mode.RefreshRate
		}
	}
	return time.Second / time.Duration(hz)
}

func (w *Window) notifyResize() {
	width, height := w.win.GetSize()
	for _, fn := range w.resize {
		fn(width, height)
	}
}

func (w *Window) Size() (int, int) {
	return w.win.GetSize()
}

func (w *Window) FramebufferSize() (int, int) {
	return w.win.GetFramebufferSize()
}

func (w *Window) PixelRatio() float64 {
	x, _ := w.win.GetContentScale()
	if x <= 0 {
		return 1
	}
	return float64(x)
}

func (w *Window) RequestFrame(fn frame.Callback) frame.ID {
	return w.loop.Request(fn)
}

func (w *Window) CancelFrame(id frame.ID) {
	w.loop.Cancel(id)
}

func (w *Window) OnResize(fn func(width, height int)) func() {
	w.nextID++
	id := w.nextID
	w.resize[id] = fn
	return func() { delete(w.resize, id) }
}

// ObserveVisibility reports when the fraction of the window visible on its
// monitors crosses threshold. Observers start out assuming visible.
func (w *Window) ObserveVisibility(threshold float64, fn func(visible bool)) func() {
	w.nextID++
	id := w.nextID
	w.observers[id] = &observer{threshold: threshold, fn: fn, visible: true}
	return func() { delete(w.observers, id) }
}

func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

func (w *Window) Present() {
	w.presented = true
}

// Frame polls events, updates visibility and runs due frame callbacks. The
// buffers are swapped only when a callback presented; otherwise the frame
// waits out one refresh interval and the last image stays on screen.
func (w *Window) Frame() int {
	glfw.PollEvents()
	w.checkVisibility()
	w.presented = false
	ran := w.loop.Run(time.Since(w.start))
	if w.presented {
		w.win.SwapBuffers()
	} else {
		glfw.WaitEventsTimeout(w.interval.Seconds())
	}
	return ran
}

func (w *Window) Destroy() {
	w.win.Destroy()
	glfw.Terminate()
}

func (w *Window) checkVisibility() {
	if len(w.observers) == 0 {
		return
	}
	fraction := w.visibleFraction()
	for _, o := range w.observers {
		visible := fraction > 0 && fraction >= o.threshold
		if visible != o.visible {
			o.visible = visible
			o.fn(visible)
		}
	}
}

func (w *Window) visibleFraction() float64 {
	if w.win.GetAttrib(glfw.Iconified) == glfw.True || w.win.GetAttrib(glfw.Visible) == glfw.False {
		return 0
	}
	x, y := w.win.GetPos()
	width, height := w.win.GetSize()
	win := Rect{X: x, Y: y, W: width, H: height}

	var areas []Rect
	for _, m := range glfw.GetMonitors() {
		mx, my, mw, mh := m.GetWorkarea()
		areas = append(areas, Rect{X: mx, Y: my, W: mw, H: mh})
	}
	return VisibleFraction(win, areas)
}

func (w *Window) String() string {
	width, height := w.Size()
	return fmt.Sprintf("window %dx%d @%.2fx", width, height, w.PixelRatio())
}
