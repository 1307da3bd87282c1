package draw

import (
	"fmt"

	"github.com/halcyonpartners/backdrop/internal/geometry"
	"github.com/halcyonpartners/backdrop/internal/gpu"
	"github.com/halcyonpartners/backdrop/internal/models"
	"github.com/halcyonpartners/backdrop/internal/shaders"
)

// Bloom mirrors the usual strength/radius/threshold knobs of a glow pass.
type Bloom struct {
	Strength  float32
	Radius    float32
	Threshold float32
}

var DefaultBloom = Bloom{Strength: 0.4, Radius: 0.6, Threshold: 0.7}

// Size is a render size in pixels.
type Size struct {
	Width, Height int
}

func (s Size) half() Size {
	return Size{Width: max(s.Width/2, 1), Height: max(s.Height/2, 1)}
}

// Composer renders a scene offscreen at the render size and presents it to
// the default framebuffer, optionally through a bloom chain.
type Composer struct {
	dev    gpu.Device
	bloom  *Bloom
	render Size
	screen Size

	quad      gpu.Mesh
	composite gpu.Program
	scene     *gpu.Target

	bright  gpu.Program
	blur    gpu.Program
	glow    *gpu.Target
	scratch *gpu.Target
}

// NewComposer allocates every program and target it needs through res.
// A nil bloom disables the glow passes.
func NewComposer(dev gpu.Device, res *gpu.Resources, bloom *Bloom, render, screen Size) (*Composer, error) {
	c := &Composer{dev: dev, bloom: bloom, render: clampSize(render), screen: clampSize(screen)}

	var err error
	if c.quad, err = res.Mesh(dev, "quad", gpu.TriangleStrip, gpu.Layout{2}, geometry.Quad(), gpu.Static); err != nil {
		return nil, fmt.Errorf("composer quad: %w", err)
	}
	if c.composite, err = res.Program(dev, shaders.Composite.Name, shaders.Composite.Vertex, shaders.Composite.Fragment); err != nil {
		return nil, err
	}
	if c.scene, err = res.Target(dev, "scene", c.render.Width, c.render.Height); err != nil {
		return nil, fmt.Errorf("scene target: %w", err)
	}

	if bloom == nil {
		return c, nil
	}

	if c.bright, err = res.Program(dev, shaders.Bright.Name, shaders.Bright.Vertex, shaders.Bright.Fragment); err != nil {
		return nil, err
	}
	if c.blur, err = res.Program(dev, shaders.Blur.Name, shaders.Blur.Vertex, shaders.Blur.Fragment); err != nil {
		return nil, err
	}
	h := c.render.half()
	if c.glow, err = res.Target(dev, "glow", h.Width, h.Height); err != nil {
		return nil, fmt.Errorf("glow target: %w", err)
	}
	if c.scratch, err = res.Target(dev, "scratch", h.Width, h.Height); err != nil {
		return nil, fmt.Errorf("scratch target: %w", err)
	}
	return c, nil
}

func clampSize(s Size) Size {
	return Size{Width: max(s.Width, 1), Height: max(s.Height, 1)}
}

func (c *Composer) RenderSize() Size { return c.render }

func (c *Composer) ScreenSize() Size { return c.screen }

// Resize re-sizes every render target.
func (c *Composer) Resize(render, screen Size) {
	c.render, c.screen = clampSize(render), clampSize(screen)
	c.dev.ResizeTarget(c.scene, c.render.Width, c.render.Height)
	if c.bloom != nil {
		h := c.render.half()
		c.dev.ResizeTarget(c.glow, h.Width, h.Height)
		c.dev.ResizeTarget(c.scratch, h.Width, h.Height)
	}
}

// Render clears the scene target, runs drawScene into it and presents.
func (c *Composer) Render(clear models.Color, drawScene func()) {
	d := c.dev

	d.BindTarget(*c.scene)
	d.Viewport(c.render.Width, c.render.Height)
	d.Clear(clear.R, clear.G, clear.B, 1)
	drawScene()

	glowTex := *c.scene
	strength := float32(0)
	if c.bloom != nil {
		c.glowPasses()
		glowTex = *c.glow
		strength = c.bloom.Strength
	}

	d.SetBlend(gpu.BlendOff)
	d.BindTarget(gpu.Target{})
	d.Viewport(c.screen.Width, c.screen.Height)
	d.UseProgram(c.composite)
	d.BindTexture(c.composite, "uScene", 0, *c.scene)
	d.BindTexture(c.composite, "uBloom", 1, glowTex)
	d.Uniform1f(c.composite, "uStrength", strength)
	d.Draw(c.quad)
	d.SetBlend(gpu.BlendAlpha)
}

func (c *Composer) glowPasses() {
	d := c.dev
	h := c.render.half()
	d.SetBlend(gpu.BlendOff)

	d.BindTarget(*c.glow)
	d.Viewport(h.Width, h.Height)
	d.UseProgram(c.bright)
	d.BindTexture(c.bright, "uScene", 0, *c.scene)
	d.Uniform1f(c.bright, "uThreshold", c.bloom.Threshold)
	d.Draw(c.quad)

	d.UseProgram(c.blur)
	d.Uniform2f(c.blur, "uResolution", float32(h.Width), float32(h.Height))
	d.Uniform1f(c.blur, "uRadius", c.bloom.Radius)

	d.BindTarget(*c.scratch)
	d.BindTexture(c.blur, "uSource", 0, *c.glow)
	d.Uniform2f(c.blur, "uDirection", 1, 0)
	d.Draw(c.quad)

	d.BindTarget(*c.glow)
	d.BindTexture(c.blur, "uSource", 0, *c.scratch)
	d.Uniform2f(c.blur, "uDirection", 0, 1)
	d.Draw(c.quad)
}
