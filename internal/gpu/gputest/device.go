// Package gputest provides an in-memory gpu.Device that records calls.
package gputest

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/halcyonpartners/backdrop/internal/gpu"
)

var ErrInjected = errors.New("injected failure")

type Draw struct {
	Program   gpu.Program
	Target    uint32
	Primitive gpu.Primitive
	Vertices  int32
	Blend     gpu.Blend
}

// Device hands out increasing object names and remembers what is live.
type Device struct {
	Initialised bool
	// FailAfter makes the Nth allocation (1-based) fail. Zero disables it.
	FailAfter int
	InitErr   error

	Programs map[gpu.Program]string
	Meshes   map[uint32][]float32
	Targets  map[uint32]gpu.Target

	Deleted      []string
	Draws        []Draw
	Uniforms     map[string]float32
	Resizes      int
	Uploads      int
	Clears       int
	ViewportSize [2]int

	next    uint32
	allocs  int
	program gpu.Program
	target  uint32
	blend   gpu.Blend
}

func New() *Device {
	return &Device{
		Programs: map[gpu.Program]string{},
		Meshes:   map[uint32][]float32{},
		Targets:  map[uint32]gpu.Target{},
		Uniforms: map[string]float32{},
	}
}

func (d *Device) alloc() (uint32, error) {
	d.allocs++
	if d.FailAfter > 0 && d.allocs >= d.FailAfter {
		return 0, ErrInjected
	}
	d.next++
	return d.next, nil
}

// Live counts objects not yet deleted.
func (d *Device) Live() int {
	return len(d.Programs) + len(d.Meshes) + len(d.Targets)
}

func (d *Device) Init() error {
	if d.InitErr != nil {
		return d.InitErr
	}
	d.Initialised = true
	return nil
}

func (d *Device) NewProgram(name, vertex, fragment string) (gpu.Program, error) {
	if vertex == "" || fragment == "" {
		return 0, fmt.Errorf("program %s: empty source", name)
	}
	id, err := d.alloc()
	if err != nil {
		return 0, err
	}
	d.Programs[gpu.Program(id)] = name
	return gpu.Program(id), nil
}

func (d *Device) NewMesh(primitive gpu.Primitive, layout gpu.Layout, vertices []float32, usage gpu.Usage) (gpu.Mesh, error) {
	id, err := d.alloc()
	if err != nil {
		return gpu.Mesh{}, err
	}
	d.Meshes[id] = append([]float32(nil), vertices...)
	return gpu.Mesh{
		VAO:       id,
		VBO:       id,
		Primitive: primitive,
		Layout:    layout,
		Vertices:  int32(len(vertices) / layout.Stride()),
	}, nil
}

func (d *Device) UpdateMesh(m gpu.Mesh, vertices []float32) {
	buf, ok := d.Meshes[m.VBO]
	if !ok {
		panic(fmt.Sprintf("update of unknown mesh %d", m.VBO))
	}
	if len(vertices) > len(buf) {
		panic("mesh update overflows buffer")
	}
	copy(buf, vertices)
	d.Uploads++
}

func (d *Device) NewTarget(width, height int) (gpu.Target, error) {
	id, err := d.alloc()
	if err != nil {
		return gpu.Target{}, err
	}
	t := gpu.Target{FBO: id, Texture: id, Width: width, Height: height}
	d.Targets[id] = t
	return t, nil
}

func (d *Device) ResizeTarget(t *gpu.Target, width, height int) {
	t.Width, t.Height = width, height
	d.Targets[t.FBO] = *t
	d.Resizes++
}

func (d *Device) BindTarget(t gpu.Target) { d.target = t.FBO }

func (d *Device) Viewport(width, height int) { d.ViewportSize = [2]int{width, height} }

func (d *Device) Clear(r, g, b, a float32) { d.Clears++ }

func (d *Device) SetBlend(b gpu.Blend) { d.blend = b }

func (d *Device) UseProgram(p gpu.Program) { d.program = p }

func (d *Device) uniform(p gpu.Program, name string, v float32) {
	d.Uniforms[d.Programs[p]+"."+name] = v
}

func (d *Device) Uniform1f(p gpu.Program, name string, v float32) { d.uniform(p, name, v) }

func (d *Device) Uniform2f(p gpu.Program, name string, x, y float32) { d.uniform(p, name, x) }

func (d *Device) Uniform3f(p gpu.Program, name string, x, y, z float32) { d.uniform(p, name, x) }

func (d *Device) UniformMat4(p gpu.Program, name string, m mgl32.Mat4) { d.uniform(p, name, m[0]) }

func (d *Device) BindTexture(p gpu.Program, name string, unit int, t gpu.Target) {
	d.uniform(p, name, float32(unit))
}

func (d *Device) Draw(m gpu.Mesh) {
	d.Draws = append(d.Draws, Draw{
		Program:   d.program,
		Target:    d.target,
		Primitive: m.Primitive,
		Vertices:  m.Vertices,
		Blend:     d.blend,
	})
}

func (d *Device) DeleteProgram(p gpu.Program) {
	name, ok := d.Programs[p]
	if !ok {
		panic(fmt.Sprintf("double delete of program %d", p))
	}
	delete(d.Programs, p)
	d.Deleted = append(d.Deleted, "program "+name)
}

func (d *Device) DeleteMesh(m gpu.Mesh) {
	if _, ok := d.Meshes[m.VBO]; !ok {
		panic(fmt.Sprintf("double delete of mesh %d", m.VBO))
	}
	delete(d.Meshes, m.VBO)
	d.Deleted = append(d.Deleted, fmt.Sprintf("mesh %d", m.VBO))
}

func (d *Device) DeleteTarget(t gpu.Target) {
	if _, ok := d.Targets[t.FBO]; !ok {
		panic(fmt.Sprintf("double delete of target %d", t.FBO))
	}
	delete(d.Targets, t.FBO)
	d.Deleted = append(d.Deleted, fmt.Sprintf("target %d", t.FBO))
}

// DrawsSince returns the draws recorded after the first n.
func (d *Device) DrawsSince(n int) []Draw {
	return d.Draws[n:]
}
