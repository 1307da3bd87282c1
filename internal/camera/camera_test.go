package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestSetViewport(t *testing.T) {
	c := New(60, 0.1, 100, mgl32.Vec3{0, 2, 10})
	c.SetViewport(1920, 1080)
	assert.InDelta(t, 16.0/9.0, c.Aspect, 1e-6)

	c.SetViewport(0, 1080)
	assert.InDelta(t, 16.0/9.0, c.Aspect, 1e-6)
}

func TestViewLooksAtOrigin(t *testing.T) {
	c := New(60, 0.1, 100, mgl32.Vec3{0, 0, 10})
	origin := c.View().Mul4x1(mgl32.Vec4{0, 0, 0, 1})

	assert.InDelta(t, 0, origin.X(), 1e-5)
	assert.InDelta(t, 0, origin.Y(), 1e-5)
	assert.InDelta(t, -10, origin.Z(), 1e-5)
}

func TestDriftAdvance(t *testing.T) {
	c := New(60, 0.1, 100, mgl32.Vec3{})
	d := Drift{
		Rate: 0.06,
		Path: func(a float32) mgl32.Vec3 {
			return mgl32.Vec3{float32(math.Sin(float64(a))) * 10, 2, float32(math.Cos(float64(a))) * 10}
		},
	}

	for range 100 {
		d.Advance(c, 0.05)
	}

	assert.InDelta(t, 0.3, d.Angle, 1e-5)
	assert.InDelta(t, 10, mgl32.Vec2{c.Eye.X(), c.Eye.Z()}.Len(), 1e-4)
	assert.Equal(t, mgl32.Vec3{}, c.Target)
}
