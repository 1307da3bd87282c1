// Package effect owns the lifecycle of one animated background: it builds a
// scene on a GPU device, drives it from the host's frame callbacks, pauses
// it while it is off-screen and tears everything down exactly once.
package effect

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/halcyonpartners/backdrop/internal/draw"
	"github.com/halcyonpartners/backdrop/internal/frame"
	"github.com/halcyonpartners/backdrop/internal/gpu"
	"github.com/halcyonpartners/backdrop/internal/models"
)

// Host is the drawing surface an effect is mounted on.
type Host interface {
	// Size is the logical size in device-independent pixels.
	Size() (width, height int)
	// FramebufferSize is the size of the default framebuffer in pixels.
	FramebufferSize() (width, height int)
	PixelRatio() float64
	RequestFrame(fn frame.Callback) frame.ID
	CancelFrame(id frame.ID)
	// Present marks the current frame as drawn. Frames nobody presents keep
	// showing the last presented image.
	Present()
	// OnResize registers fn for changes to the logical size, framebuffer
	// size or pixel ratio.
	OnResize(fn func(width, height int)) (remove func())
	// ObserveVisibility calls fn whenever the visible fraction of the
	// surface crosses threshold.
	ObserveVisibility(threshold float64, fn func(visible bool)) (disconnect func())
}

// Scene is one concrete effect. Scenes hold CPU state from construction and
// only touch the device in Build and Draw.
type Scene interface {
	Name() string
	// Bloom returns nil when the scene is composed without glow.
	Bloom() *draw.Bloom
	ClearColor() models.Color
	Build(dev gpu.Device, res *gpu.Resources) error
	Resize(render draw.Size, pixelRatio float32)
	Advance(dt, elapsed float32)
	Draw(dev gpu.Device)
}

type Constraint int

const (
	ConstraintAuto Constraint = iota
	ConstraintAlways
	ConstraintNever
)

// ConstrainedWidth is the logical width below which ConstraintAuto treats
// the host as a constrained device.
const ConstrainedWidth = 768

type Options struct {
	VisibilityThreshold   float64
	MaxPixelRatio         float64
	ConstrainedPixelRatio float64
	Constraint            Constraint
	MaxDelta              float32
}

func DefaultOptions() Options {
	return Options{
		VisibilityThreshold:   0.05,
		MaxPixelRatio:         2,
		ConstrainedPixelRatio: 1.5,
		Constraint:            ConstraintAuto,
		MaxDelta:              0.05,
	}
}

// Handle is a running effect instance.
type Handle struct {
	log   *zap.Logger
	host  Host
	dev   gpu.Device
	scene Scene
	opts  Options

	res      *gpu.Resources
	composer *draw.Composer
	clock    *frame.Clock
	tickFn   frame.Callback
	drawFn   func()

	state       models.State
	visible     bool
	constrained bool
	frameID     frame.ID
	ticks       uint64
	rendered    uint64
}

// Create builds scene on dev and schedules its first frame. When any step
// fails everything acquired so far is released, newest first, and the
// error is returned.
func Create(host Host, dev gpu.Device, scene Scene, opts Options, log *zap.Logger) (*Handle, error) {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Handle{
		log:     log.With(zap.String("effect", scene.Name())),
		host:    host,
		dev:     dev,
		scene:   scene,
		opts:    opts,
		res:     gpu.NewResources(log),
		clock:   frame.NewClock(opts.MaxDelta),
		state:   models.Uninitialized,
		visible: true,
	}
	h.tickFn = h.tick
	h.drawFn = h.draw

	h.state = models.Constructing
	if err := h.construct(); err != nil {
		h.Dispose()
		return nil, fmt.Errorf("create %s: %w", scene.Name(), err)
	}

	if h.visible {
		h.state = models.Running
	} else {
		h.state = models.Paused
	}
	h.frameID = h.host.RequestFrame(h.tickFn)
	h.log.Info("effect running",
		zap.Bool("constrained", h.constrained),
		zap.Bool("bloom", scene.Bloom() != nil),
		zap.Int("gpu_objects", h.res.Len()))
	return h, nil
}

func (h *Handle) construct() error {
	width, _ := h.host.Size()
	switch h.opts.Constraint {
	case ConstraintAlways:
		h.constrained = true
	case ConstraintAuto:
		h.constrained = width < ConstrainedWidth
	}

	if disconnect := h.host.ObserveVisibility(h.opts.VisibilityThreshold, h.SetVisible); disconnect != nil {
		h.res.Track("visibility observer", disconnect)
	}

	if err := h.dev.Init(); err != nil {
		return fmt.Errorf("init device: %w", err)
	}

	render, screen, ratio := h.sizes()
	composer, err := draw.NewComposer(h.dev, h.res, h.scene.Bloom(), render, screen)
	if err != nil {
		return err
	}
	h.composer = composer

	if err := h.scene.Build(h.dev, h.res); err != nil {
		return err
	}
	h.scene.Resize(render, ratio)

	if remove := h.host.OnResize(func(int, int) { h.Resize() }); remove != nil {
		h.res.Track("resize handler", remove)
	}
	return nil
}

// PixelRatio is the host ratio capped for the device class.
func (h *Handle) PixelRatio() float64 {
	limit := h.opts.MaxPixelRatio
	if h.constrained {
		limit = h.opts.ConstrainedPixelRatio
	}
	ratio := h.host.PixelRatio()
	if ratio <= 0 || math.IsNaN(ratio) {
		ratio = 1
	}
	return min(ratio, limit)
}

func (h *Handle) sizes() (render, screen draw.Size, ratio float32) {
	r := h.PixelRatio()
	w, ht := h.host.Size()
	fw, fh := h.host.FramebufferSize()
	render = draw.Size{
		Width:  max(int(math.Round(float64(w)*r)), 1),
		Height: max(int(math.Round(float64(ht)*r)), 1),
	}
	return render, draw.Size{Width: fw, Height: fh}, float32(r)
}

// Resize re-reads the host size and re-sizes the camera and every render
// target.
func (h *Handle) Resize() {
	if h.composer == nil || h.state == models.Disposing || h.state == models.Disposed {
		return
	}
	render, screen, ratio := h.sizes()
	h.composer.Resize(render, screen)
	h.scene.Resize(h.composer.RenderSize(), ratio)
	h.log.Debug("resized",
		zap.Int("width", render.Width),
		zap.Int("height", render.Height),
		zap.Float32("pixel_ratio", ratio))
}

// SetVisible pauses or resumes the effect. Repeating the current value does
// nothing.
func (h *Handle) SetVisible(visible bool) {
	if visible == h.visible {
		return
	}
	h.visible = visible
	switch h.state {
	case models.Running, models.Paused:
		if visible {
			h.state = models.Running
		} else {
			h.state = models.Paused
		}
		h.log.Debug("visibility changed", zap.Stringer("state", h.state))
	}
}

func (h *Handle) tick(now time.Duration) {
	if h.state == models.Disposing || h.state == models.Disposed {
		return
	}
	h.frameID = h.host.RequestFrame(h.tickFn)

	if !h.visible {
		return
	}
	h.ticks++
	if h.constrained && h.ticks%2 != 0 {
		return
	}

	dt, elapsed := h.clock.Tick(now)
	h.scene.Advance(dt, elapsed)
	h.composer.Render(h.scene.ClearColor(), h.drawFn)
	h.host.Present()
	h.rendered++
}

func (h *Handle) draw() {
	h.scene.Draw(h.dev)
}

// Dispose stops the frame loop and releases everything the handle acquired.
// It is safe to call more than once.
func (h *Handle) Dispose() {
	if h == nil || h.state == models.Disposing || h.state == models.Disposed {
		return
	}
	h.state = models.Disposing
	if h.frameID != 0 {
		h.host.CancelFrame(h.frameID)
		h.frameID = 0
	}
	h.res.Release()
	h.state = models.Disposed
	h.log.Info("effect disposed", zap.Uint64("frames", h.rendered))
}

func (h *Handle) State() models.State { return h.state }

func (h *Handle) Constrained() bool { return h.constrained }

// Rendered counts frames that advanced and drew the scene.
func (h *Handle) Rendered() uint64 { return h.rendered }
