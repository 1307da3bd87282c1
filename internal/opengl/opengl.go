package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/halcyonpartners/backdrop/internal/gpu"
)

// Device drives an OpenGL 4.1 core context. It must be used from the thread
// that owns the current context.
type Device struct {
	log       *zap.Logger
	uniforms  map[gpu.Program]map[string]int32
	capacity  map[uint32]int
	target    gpu.Target
	primitive map[gpu.Primitive]uint32
}

func New(log *zap.Logger) *Device {
	return &Device{
		log:      log,
		uniforms: map[gpu.Program]map[string]int32{},
		capacity: map[uint32]int{},
		primitive: map[gpu.Primitive]uint32{
			gpu.Points:        gl.POINTS,
			gpu.Lines:         gl.LINES,
			gpu.LineStrip:     gl.LINE_STRIP,
			gpu.Triangles:     gl.TRIANGLES,
			gpu.TriangleStrip: gl.TRIANGLE_STRIP,
		},
	}
}

func (d *Device) Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	d.log.Info("OpenGL ready",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Disable(gl.DEPTH_TEST)
	return nil
}

func (d *Device) NewProgram(name, vertex, fragment string) (gpu.Program, error) {
	vertShader, err := CompileShaderFromSource(vertex, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("%s vertex shader: %w", name, err)
	}
	fragShader, err := CompileShaderFromSource(fragment, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertShader)
		return 0, fmt.Errorf("%s fragment shader: %w", name, err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertShader)
	gl.DeleteShader(fragShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logMsg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logMsg))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link %s program: %s", name, strings.TrimRight(logMsg, "\x00"))
	}

	d.log.Debug("linked program", zap.String("program", name), zap.Uint32("id", program))
	d.uniforms[gpu.Program(program)] = map[string]int32{}
	return gpu.Program(program), nil
}

func (d *Device) NewMesh(primitive gpu.Primitive, layout gpu.Layout, vertices []float32, usage gpu.Usage) (gpu.Mesh, error) {
	stride := layout.Stride()
	if stride == 0 {
		return gpu.Mesh{}, fmt.Errorf("mesh layout has no attributes")
	}

	m := gpu.Mesh{Primitive: primitive, Layout: layout, Vertices: int32(len(vertices) / stride)}
	gl.GenVertexArrays(1, &m.VAO)
	gl.GenBuffers(1, &m.VBO)

	gl.BindVertexArray(m.VAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)

	hint := uint32(gl.STATIC_DRAW)
	if usage == gpu.Dynamic {
		hint = gl.DYNAMIC_DRAW
	}
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), hint)
	}
	d.capacity[m.VBO] = len(vertices)

	offset := 0
	for loc, count := range layout {
		gl.VertexAttribPointerWithOffset(uint32(loc), int32(count), gl.FLOAT, false, int32(stride*4), uintptr(offset*4))
		gl.EnableVertexAttribArray(uint32(loc))
		offset += count
	}

	gl.BindVertexArray(0)
	return m, nil
}

func (d *Device) UpdateMesh(m gpu.Mesh, vertices []float32) {
	if len(vertices) == 0 {
		return
	}
	if len(vertices) > d.capacity[m.VBO] {
		d.log.Warn("mesh update exceeds buffer, truncating",
			zap.Uint32("vbo", m.VBO),
			zap.Int("floats", len(vertices)),
			zap.Int("capacity", d.capacity[m.VBO]))
		vertices = vertices[:d.capacity[m.VBO]]
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
}

func (d *Device) NewTarget(width, height int) (gpu.Target, error) {
	t := gpu.Target{Width: width, Height: height}

	gl.GenTextures(1, &t.Texture)
	gl.BindTexture(gl.TEXTURE_2D, t.Texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA16F, int32(width), int32(height), 0, gl.RGBA, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.GenFramebuffers(1, &t.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.FBO)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.Texture, 0)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, d.target.FBO)
	if status != gl.FRAMEBUFFER_COMPLETE {
		gl.DeleteFramebuffers(1, &t.FBO)
		gl.DeleteTextures(1, &t.Texture)
		return gpu.Target{}, fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return t, nil
}

func (d *Device) ResizeTarget(t *gpu.Target, width, height int) {
	if t.Width == width && t.Height == height {
		return
	}
	t.Width, t.Height = width, height
	gl.BindTexture(gl.TEXTURE_2D, t.Texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA16F, int32(width), int32(height), 0, gl.RGBA, gl.FLOAT, nil)
}

func (d *Device) BindTarget(t gpu.Target) {
	d.target = t
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.FBO)
}

func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Device) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *Device) SetBlend(b gpu.Blend) {
	switch b {
	case gpu.BlendOff:
		gl.Disable(gl.BLEND)
	case gpu.BlendAlpha:
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	case gpu.BlendAdditive:
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	}
}

func (d *Device) UseProgram(p gpu.Program) {
	gl.UseProgram(uint32(p))
}

func (d *Device) location(p gpu.Program, name string) int32 {
	cache := d.uniforms[p]
	if loc, ok := cache[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
	if cache != nil {
		cache[name] = loc
	}
	return loc
}

func (d *Device) Uniform1f(p gpu.Program, name string, v float32) {
	gl.Uniform1f(d.location(p, name), v)
}

func (d *Device) Uniform2f(p gpu.Program, name string, x, y float32) {
	gl.Uniform2f(d.location(p, name), x, y)
}

func (d *Device) Uniform3f(p gpu.Program, name string, x, y, z float32) {
	gl.Uniform3f(d.location(p, name), x, y, z)
}

func (d *Device) UniformMat4(p gpu.Program, name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(d.location(p, name), 1, false, &m[0])
}

func (d *Device) BindTexture(p gpu.Program, name string, unit int, t gpu.Target) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, t.Texture)
	gl.Uniform1i(d.location(p, name), int32(unit))
}

func (d *Device) Draw(m gpu.Mesh) {
	if m.Vertices == 0 {
		return
	}
	gl.BindVertexArray(m.VAO)
	gl.DrawArrays(d.primitive[m.Primitive], 0, m.Vertices)
	gl.BindVertexArray(0)
}

func (d *Device) DeleteProgram(p gpu.Program) {
	gl.DeleteProgram(uint32(p))
	delete(d.uniforms, p)
}

func (d *Device) DeleteMesh(m gpu.Mesh) {
	gl.DeleteBuffers(1, &m.VBO)
	gl.DeleteVertexArrays(1, &m.VAO)
	delete(d.capacity, m.VBO)
}

func (d *Device) DeleteTarget(t gpu.Target) {
	gl.DeleteFramebuffers(1, &t.FBO)
	gl.DeleteTextures(1, &t.Texture)
}
