// Package geometry builds flat triangle lists for the decorative meshes.
package geometry

import (
	"math"
)

// Sphere returns a UV sphere as a triangle list, three floats per vertex.
func Sphere(radius float32, widthSegments, heightSegments int) []float32 {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	point := func(u, v int) [3]float32 {
		phi := float64(u) / float64(widthSegments) * 2 * math.Pi
		theta := float64(v) / float64(heightSegments) * math.Pi
		return [3]float32{
			float32(-math.Cos(phi)*math.Sin(theta)) * radius,
			float32(math.Cos(theta)) * radius,
			float32(math.Sin(phi)*math.Sin(theta)) * radius,
		}
	}

	out := make([]float32, 0, widthSegments*heightSegments*18)
	for v := range heightSegments {
		for u := range widthSegments {
			a, b := point(u, v), point(u+1, v)
			c, d := point(u, v+1), point(u+1, v+1)
			if v != 0 {
				out = appendTri(out, a, c, b)
			}
			if v != heightSegments-1 {
				out = appendTri(out, b, c, d)
			}
		}
	}
	return out
}

// Ring returns a flat annulus in the XY plane as a triangle list.
func Ring(inner, outer float32, segments int) []float32 {
	segments = max(segments, 3)
	out := make([]float32, 0, segments*18)
	for i := range segments {
		a0 := float64(i) / float64(segments) * 2 * math.Pi
		a1 := float64(i+1) / float64(segments) * 2 * math.Pi
		s0, c0 := math.Sincos(a0)
		s1, c1 := math.Sincos(a1)

		in0 := [3]float32{float32(c0) * inner, float32(s0) * inner, 0}
		out0 := [3]float32{float32(c0) * outer, float32(s0) * outer, 0}
		in1 := [3]float32{float32(c1) * inner, float32(s1) * inner, 0}
		out1 := [3]float32{float32(c1) * outer, float32(s1) * outer, 0}

		out = appendTri(out, in0, out0, out1)
		out = appendTri(out, in0, out1, in1)
	}
	return out
}

// Quad is a clip-space quad for TRIANGLE_STRIP, two floats per vertex.
func Quad() []float32 {
	return []float32{
		-1.0, -1.0,
		1.0, -1.0,
		-1.0, 1.0,
		1.0, 1.0,
	}
}

func appendTri(out []float32, a, b, c [3]float32) []float32 {
	return append(out, a[0], a[1], a[2], b[0], b[1], b[2], c[0], c[1], c[2])
}
