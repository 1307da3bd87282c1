// Package silk is the silk-threads section backdrop: a stack of slow sine
// ribbons drawn as translucent line strips.
package silk

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/halcyonpartners/backdrop/internal/camera"
	"github.com/halcyonpartners/backdrop/internal/draw"
	"github.com/halcyonpartners/backdrop/internal/gpu"
	"github.com/halcyonpartners/backdrop/internal/models"
	"github.com/halcyonpartners/backdrop/internal/shaders"
	"github.com/halcyonpartners/backdrop/internal/wave"
)

const Name = "silk"

type Params struct {
	Wave    wave.Params
	Palette models.Palette

	FOV, Near, Far  float32
	FogNear, FogFar float32
	DriftRate       float32
}

func DefaultParams() Params {
	return Params{
		Wave:      wave.DefaultParams,
		Palette:   models.DefaultPalette,
		FOV:       50,
		Near:      0.1,
		Far:       50,
		FogNear:   5,
		FogFar:    18,
		DriftRate: 0.03,
	}
}

type Scene struct {
	params Params
	gen    *wave.Generator
	cam    *camera.Camera
	drift  camera.Drift

	prog   gpu.Program
	meshes []gpu.Mesh
	colors []models.Color
	dev    gpu.Device
}

func New(params Params, seed uint64) *Scene {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	s := &Scene{
		params: params,
		gen:    wave.NewGenerator(rng, params.Wave),
		cam:    camera.New(params.FOV, params.Near, params.Far, mgl32.Vec3{0, 0, 8}),
	}
	s.drift = camera.Drift{Rate: params.DriftRate, Path: sway}

	strands := s.gen.Strands()
	s.colors = make([]models.Color, len(strands))
	for i, st := range strands {
		s.colors[i] = params.Palette.Base.Lerp(params.Palette.Bright, st.Tint)
	}
	s.gen.Update(0)
	return s
}

func sway(angle float32) mgl32.Vec3 {
	a := float64(angle)
	return mgl32.Vec3{float32(math.Sin(a)) * 0.5, float32(math.Cos(a*0.7)) * 0.3, 8}
}

func (s *Scene) Name() string { return Name }

// Bloom is always nil; the threads are too faint to glow.
func (s *Scene) Bloom() *draw.Bloom { return nil }

func (s *Scene) ClearColor() models.Color { return s.params.Palette.Backdrop }

func (s *Scene) Generator() *wave.Generator { return s.gen }

func (s *Scene) Camera() *camera.Camera { return s.cam }

func (s *Scene) Build(dev gpu.Device, res *gpu.Resources) error {
	var err error
	if s.prog, err = res.Program(dev, shaders.Mesh.Name, shaders.Mesh.Vertex, shaders.Mesh.Fragment); err != nil {
		return err
	}
	strands := s.gen.Strands()
	s.meshes = make([]gpu.Mesh, 0, len(strands))
	for i := range strands {
		m, err := res.Mesh(dev, "strand", gpu.LineStrip, gpu.Layout{3}, strands[i].Points, gpu.Dynamic)
		if err != nil {
			return err
		}
		s.meshes = append(s.meshes, m)
	}
	s.dev = dev
	return nil
}

func (s *Scene) Resize(render draw.Size, _ float32) {
	s.cam.SetViewport(render.Width, render.Height)
}

func (s *Scene) Advance(dt, elapsed float32) {
	s.gen.Update(elapsed)
	s.drift.Advance(s.cam, dt)
}

func (s *Scene) Draw(dev gpu.Device) {
	s.dev = dev
	s.gen.Flush(s.upload)

	pal := s.params.Palette
	dev.SetBlend(gpu.BlendAlpha)
	dev.UseProgram(s.prog)
	dev.UniformMat4(s.prog, "uModel", mgl32.Ident4())
	dev.UniformMat4(s.prog, "uView", s.cam.View())
	dev.UniformMat4(s.prog, "uProjection", s.cam.Projection())
	dev.Uniform3f(s.prog, "uFogColor", pal.Dim.R, pal.Dim.G, pal.Dim.B)
	dev.Uniform1f(s.prog, "uFogNear", s.params.FogNear)
	dev.Uniform1f(s.prog, "uFogFar", s.params.FogFar)

	strands := s.gen.Strands()
	for i, m := range s.meshes {
		c := s.colors[i]
		dev.Uniform3f(s.prog, "uColor", c.R, c.G, c.B)
		dev.Uniform1f(s.prog, "uOpacity", strands[i].Opacity)
		dev.Draw(m)
	}
}

func (s *Scene) upload(i int, points []float32) {
	if i < len(s.meshes) {
		s.dev.UpdateMesh(s.meshes[i], points)
	}
}
