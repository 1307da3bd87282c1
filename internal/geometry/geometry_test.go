package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphereVerticesOnSurface(t *testing.T) {
	verts := Sphere(0.25, 32, 32)
	require.Zero(t, len(verts)%9)

	// poles collapse to single triangles: 2*32 caps + 2*32*30 body
	assert.Equal(t, (2*32+2*32*30)*9, len(verts))

	for i := 0; i < len(verts); i += 3 {
		r := math.Sqrt(float64(verts[i]*verts[i] + verts[i+1]*verts[i+1] + verts[i+2]*verts[i+2]))
		assert.InDelta(t, 0.25, r, 1e-5)
	}
}

func TestRingVerticesWithinAnnulus(t *testing.T) {
	verts := Ring(0.4, 0.5, 64)
	assert.Equal(t, 64*2*9, len(verts))

	for i := 0; i < len(verts); i += 3 {
		r := math.Hypot(float64(verts[i]), float64(verts[i+1]))
		assert.GreaterOrEqual(t, r, 0.4-1e-5)
		assert.LessOrEqual(t, r, 0.5+1e-5)
		assert.Zero(t, verts[i+2])
	}
}

func TestDegenerateSegmentCounts(t *testing.T) {
	assert.Equal(t, 3*2*9, len(Ring(1, 2, 0)))
	assert.NotEmpty(t, Sphere(1, 0, 0))
}

func TestQuad(t *testing.T) {
	assert.Len(t, Quad(), 8)
}
