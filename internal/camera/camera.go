package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera that always looks at Target.
type Camera struct {
	FOV    float32 // vertical, degrees
	Near   float32
	Far    float32
	Aspect float32
	Eye    mgl32.Vec3
	Target mgl32.Vec3
}

func New(fov, near, far float32, eye mgl32.Vec3) *Camera {
	return &Camera{FOV: fov, Near: near, Far: far, Aspect: 1, Eye: eye}
}

// SetViewport re-derives the aspect ratio. Degenerate sizes keep the
// previous aspect.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, mgl32.Vec3{0, 1, 0})
}

// Drift slowly orbits a camera. Path maps the accumulated angle to an eye
// position.
type Drift struct {
	Rate  float32
	Angle float32
	Path  func(angle float32) mgl32.Vec3
}

// Advance moves the orbit by Rate*dt and re-aims the camera at the origin.
func (d *Drift) Advance(c *Camera, dt float32) {
	d.Angle += dt * d.Rate
	c.Eye = d.Path(d.Angle)
	c.Target = mgl32.Vec3{}
}
