// Package lens is the gravitational-lens hero: a particle field falling
// around an invisible mass, with a dark void and a faint distortion ring at
// the centre.
package lens

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/halcyonpartners/backdrop/internal/camera"
	"github.com/halcyonpartners/backdrop/internal/draw"
	"github.com/halcyonpartners/backdrop/internal/geometry"
	"github.com/halcyonpartners/backdrop/internal/gpu"
	"github.com/halcyonpartners/backdrop/internal/models"
	"github.com/halcyonpartners/backdrop/internal/shaders"
	"github.com/halcyonpartners/backdrop/internal/spawn"
	"github.com/halcyonpartners/backdrop/internal/update"
)

const Name = "lens"

type Params struct {
	Field   models.FieldParams
	Palette models.Palette
	Bloom   *draw.Bloom

	FOV, Near, Far  float32
	FogNear, FogFar float32
	DriftRate       float32

	VoidRadius           float32
	RingInner, RingOuter float32
}

func DefaultParams() Params {
	bloom := draw.DefaultBloom
	return Params{
		Field:      models.DefaultFieldParams,
		Palette:    models.DefaultPalette,
		Bloom:      &bloom,
		FOV:        60,
		Near:       0.1,
		Far:        100,
		FogNear:    8,
		FogFar:     20,
		DriftRate:  0.06,
		VoidRadius: 0.25,
		RingInner:  0.4,
		RingOuter:  0.5,
	}
}

type Scene struct {
	params Params
	sim    *update.Simulator
	cam    *camera.Camera
	drift  camera.Drift

	pointsProg gpu.Program
	meshProg   gpu.Program
	points     gpu.Mesh
	void       gpu.Mesh
	ring       gpu.Mesh
	ringModel  mgl32.Mat4

	ringOpacity float32
	pixelRatio  float32
}

// New seeds the particle field on the CPU. Nothing touches the GPU until
// Build.
func New(params Params, seed uint64) *Scene {
	field := models.NewField(params.Field.Count)
	spawner := spawn.Seeded(seed, params.Field)
	spawner.Seed(field)

	s := &Scene{
		params:      params,
		sim:         update.New(field, params.Field, spawner),
		cam:         camera.New(params.FOV, params.Near, params.Far, mgl32.Vec3{0, 2, 10}),
		ringModel:   mgl32.HomogRotate3DX(math.Pi / 2),
		ringOpacity: 0.05,
		pixelRatio:  1,
	}
	s.drift = camera.Drift{Rate: params.DriftRate, Path: orbit}
	return s
}

func orbit(angle float32) mgl32.Vec3 {
	a := float64(angle)
	return mgl32.Vec3{
		float32(math.Sin(a)) * 10,
		2 + float32(math.Sin(a*0.3))*0.8,
		float32(math.Cos(a)) * 10,
	}
}

func (s *Scene) Name() string { return Name }

func (s *Scene) Bloom() *draw.Bloom { return s.params.Bloom }

func (s *Scene) ClearColor() models.Color { return s.params.Palette.Dim }

func (s *Scene) Field() *models.Field { return s.sim.Field() }

func (s *Scene) Camera() *camera.Camera { return s.cam }

func (s *Scene) RingOpacity() float32 { return s.ringOpacity }

func (s *Scene) Build(dev gpu.Device, res *gpu.Resources) error {
	var err error
	if s.pointsProg, err = res.Program(dev, shaders.Points.Name, shaders.Points.Vertex, shaders.Points.Fragment); err != nil {
		return err
	}
	if s.meshProg, err = res.Program(dev, shaders.Mesh.Name, shaders.Mesh.Vertex, shaders.Mesh.Fragment); err != nil {
		return err
	}
	if s.points, err = res.Mesh(dev, "particles", gpu.Points, gpu.Layout{3}, s.sim.Field().Positions, gpu.Dynamic); err != nil {
		return err
	}
	if s.void, err = res.Mesh(dev, "void", gpu.Triangles, gpu.Layout{3}, geometry.Sphere(s.params.VoidRadius, 32, 32), gpu.Static); err != nil {
		return err
	}
	if s.ring, err = res.Mesh(dev, "ring", gpu.Triangles, gpu.Layout{3}, geometry.Ring(s.params.RingInner, s.params.RingOuter, 64), gpu.Static); err != nil {
		return err
	}
	return nil
}

func (s *Scene) Resize(render draw.Size, pixelRatio float32) {
	s.cam.SetViewport(render.Width, render.Height)
	s.pixelRatio = pixelRatio
}

// Advance steps the field, pulses the ring and drifts the camera.
func (s *Scene) Advance(dt, elapsed float32) {
	s.sim.Step(dt)
	s.ringOpacity = 0.05 + float32(math.Sin(float64(elapsed)*0.8))*0.03
	s.drift.Advance(s.cam, dt)
}

func (s *Scene) Draw(dev gpu.Device) {
	view, proj := s.cam.View(), s.cam.Projection()
	pal := s.params.Palette

	dev.UpdateMesh(s.points, s.sim.Field().Positions)

	dev.SetBlend(gpu.BlendAdditive)
	dev.UseProgram(s.pointsProg)
	dev.UniformMat4(s.pointsProg, "uView", view)
	dev.UniformMat4(s.pointsProg, "uProjection", proj)
	dev.Uniform1f(s.pointsProg, "uPixelRatio", s.pixelRatio)
	dev.Uniform3f(s.pointsProg, "uColor", pal.Base.R, pal.Base.G, pal.Base.B)
	dev.Uniform3f(s.pointsProg, "uBright", pal.Bright.R, pal.Bright.G, pal.Bright.B)
	dev.Draw(s.points)

	dev.SetBlend(gpu.BlendAlpha)
	dev.UseProgram(s.meshProg)
	dev.UniformMat4(s.meshProg, "uView", view)
	dev.UniformMat4(s.meshProg, "uProjection", proj)
	dev.Uniform3f(s.meshProg, "uFogColor", pal.Dim.R, pal.Dim.G, pal.Dim.B)
	dev.Uniform1f(s.meshProg, "uFogNear", s.params.FogNear)
	dev.Uniform1f(s.meshProg, "uFogFar", s.params.FogFar)

	dev.UniformMat4(s.meshProg, "uModel", mgl32.Ident4())
	dev.Uniform3f(s.meshProg, "uColor", 0, 0, 0)
	dev.Uniform1f(s.meshProg, "uOpacity", 1)
	dev.Draw(s.void)

	dev.UniformMat4(s.meshProg, "uModel", s.ringModel)
	dev.Uniform3f(s.meshProg, "uColor", pal.Base.R, pal.Base.G, pal.Base.B)
	dev.Uniform1f(s.meshProg, "uOpacity", s.ringOpacity)
	dev.Draw(s.ring)
}
