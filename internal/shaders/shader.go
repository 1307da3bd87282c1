package shaders

import (
	"embed"
	"fmt"
)

//go:embed glsl/*.glsl
var files embed.FS

// Pair is the vertex and fragment source of one program.
type Pair struct {
	Name     string
	Vertex   string
	Fragment string
}

var (
	Points    = mustPair("points", "points.vert.glsl", "points.frag.glsl")
	Mesh      = mustPair("mesh", "mesh.vert.glsl", "mesh.frag.glsl")
	Bright    = mustPair("bright", "quad.vert.glsl", "bright.frag.glsl")
	Blur      = mustPair("blur", "quad.vert.glsl", "blur.frag.glsl")
	Composite = mustPair("composite", "quad.vert.glsl", "composite.frag.glsl")
)

func Source(file string) (string, error) {
	data, err := files.ReadFile("glsl/" + file)
	if err != nil {
		return "", fmt.Errorf("failed to read shader %q: %w", file, err)
	}
	return string(data), nil
}

func mustPair(name, vertex, fragment string) Pair {
	v, err := Source(vertex)
	if err != nil {
		panic(err)
	}
	f, err := Source(fragment)
	if err != nil {
		panic(err)
	}
	return Pair{Name: name, Vertex: v, Fragment: f}
}
