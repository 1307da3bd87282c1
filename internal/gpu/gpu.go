// Package gpu describes the rendering operations the effects need and keeps
// track of the GPU objects an effect instance owns.
package gpu

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Program uint32

type Primitive int

const (
	Points Primitive = iota
	Lines
	LineStrip
	Triangles
	TriangleStrip
)

type Usage int

const (
	Static Usage = iota
	Dynamic
)

type Blend int

const (
	BlendOff Blend = iota
	BlendAlpha
	BlendAdditive
)

// Layout lists the float count of each vertex attribute, in location order.
type Layout []int

func (l Layout) Stride() int {
	n := 0
	for _, c := range l {
		n += c
	}
	return n
}

type Mesh struct {
	VAO       uint32
	VBO       uint32
	Primitive Primitive
	Layout    Layout
	Vertices  int32
}

// Target is an offscreen colour buffer. The zero Target is the default
// framebuffer.
type Target struct {
	FBO     uint32
	Texture uint32
	Width   int
	Height  int
}

type Device interface {
	Init() error
	NewProgram(name, vertex, fragment string) (Program, error)
	NewMesh(primitive Primitive, layout Layout, vertices []float32, usage Usage) (Mesh, error)
	// UpdateMesh overwrites the mesh's vertex data in place. len(vertices)
	// must not exceed the size the mesh was created with.
	UpdateMesh(m Mesh, vertices []float32)
	NewTarget(width, height int) (Target, error)
	ResizeTarget(t *Target, width, height int)

	BindTarget(t Target)
	Viewport(width, height int)
	Clear(r, g, b, a float32)
	SetBlend(b Blend)
	UseProgram(p Program)
	Uniform1f(p Program, name string, v float32)
	Uniform2f(p Program, name string, x, y float32)
	Uniform3f(p Program, name string, x, y, z float32)
	UniformMat4(p Program, name string, m mgl32.Mat4)
	BindTexture(p Program, name string, unit int, t Target)
	Draw(m Mesh)

	DeleteProgram(p Program)
	DeleteMesh(m Mesh)
	DeleteTarget(t Target)
}
