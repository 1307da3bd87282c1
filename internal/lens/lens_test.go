package lens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonpartners/backdrop/internal/draw"
	"github.com/halcyonpartners/backdrop/internal/gpu"
	"github.com/halcyonpartners/backdrop/internal/gpu/gputest"
)

func TestBuildAllocatesSceneNodes(t *testing.T) {
	dev := gputest.New()
	res := gpu.NewResources(nil)
	s := New(DefaultParams(), 1)

	require.NoError(t, s.Build(dev, res))
	assert.Equal(t, 5, dev.Live())
	assert.Len(t, dev.Meshes[s.points.VBO], DefaultParams().Field.Count*3)

	res.Release()
	assert.Zero(t, dev.Live())
}

func TestAdvanceMovesCameraAndRing(t *testing.T) {
	s := New(DefaultParams(), 2)
	eye := s.Camera().Eye

	s.Advance(0.016, 0.5)
	assert.NotEqual(t, eye, s.Camera().Eye)
	assert.InDelta(t, 0.05+0.03*0.3894183, s.RingOpacity(), 1e-5)

	p := DefaultParams().Field
	for i := range s.Field().Count {
		assert.GreaterOrEqual(t, s.Field().Distance(i), p.MinRadius)
		assert.LessOrEqual(t, s.Field().Distance(i), p.MaxRadius)
	}
}

func TestDrawUploadsAndDraws(t *testing.T) {
	dev := gputest.New()
	res := gpu.NewResources(nil)
	s := New(DefaultParams(), 3)
	require.NoError(t, s.Build(dev, res))
	s.Resize(draw.Size{Width: 1280, Height: 720}, 2)

	s.Advance(0.016, 0.016)
	s.Draw(dev)

	assert.Equal(t, 1, dev.Uploads)
	require.Len(t, dev.Draws, 3)
	assert.Equal(t, gpu.Points, dev.Draws[0].Primitive)
	assert.Equal(t, gpu.BlendAdditive, dev.Draws[0].Blend)
	assert.Equal(t, gpu.Triangles, dev.Draws[1].Primitive)
	assert.Equal(t, float32(2), dev.Uniforms["points.uPixelRatio"])
	assert.Equal(t, s.Field().Positions, dev.Meshes[s.points.VBO])
	assert.InDelta(t, 1280.0/720.0, s.Camera().Aspect, 1e-6)
}
