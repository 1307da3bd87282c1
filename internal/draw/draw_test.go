package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonpartners/backdrop/internal/gpu"
	"github.com/halcyonpartners/backdrop/internal/gpu/gputest"
	"github.com/halcyonpartners/backdrop/internal/models"
)

func TestComposerWithoutBloom(t *testing.T) {
	dev := gputest.New()
	res := gpu.NewResources(nil)

	c, err := NewComposer(dev, res, nil, Size{800, 600}, Size{800, 600})
	require.NoError(t, err)
	assert.Equal(t, 3, dev.Live())

	sceneDraws := 0
	c.Render(models.DefaultPalette.Dim, func() { sceneDraws++ })

	assert.Equal(t, 1, sceneDraws)
	require.Len(t, dev.Draws, 1)
	assert.Equal(t, uint32(0), dev.Draws[0].Target, "presented to the default framebuffer")
	assert.Equal(t, float32(0), dev.Uniforms["composite.uStrength"])

	res.Release()
	assert.Zero(t, dev.Live())
}

func TestComposerBloomPasses(t *testing.T) {
	dev := gputest.New()
	res := gpu.NewResources(nil)
	bloom := DefaultBloom

	c, err := NewComposer(dev, res, &bloom, Size{800, 600}, Size{1600, 1200})
	require.NoError(t, err)
	assert.Equal(t, 7, dev.Live())

	c.Render(models.DefaultPalette.Dim, func() {})

	// bright, blur x2, composite
	require.Len(t, dev.Draws, 4)
	assert.Equal(t, uint32(0), dev.Draws[3].Target)
	assert.Equal(t, [2]int{1600, 1200}, dev.ViewportSize)
	assert.Equal(t, float32(0.4), dev.Uniforms["composite.uStrength"])
	assert.Equal(t, float32(0.7), dev.Uniforms["bright.uThreshold"])
}

func TestComposerResize(t *testing.T) {
	dev := gputest.New()
	res := gpu.NewResources(nil)
	bloom := DefaultBloom

	c, err := NewComposer(dev, res, &bloom, Size{800, 600}, Size{800, 600})
	require.NoError(t, err)

	c.Resize(Size{1024, 768}, Size{2048, 1536})
	assert.Equal(t, 3, dev.Resizes)
	assert.Equal(t, Size{1024, 768}, c.RenderSize())
	assert.Equal(t, Size{2048, 1536}, c.ScreenSize())

	sizes := map[[2]int]int{}
	for _, tgt := range dev.Targets {
		sizes[[2]int{tgt.Width, tgt.Height}]++
	}
	assert.Equal(t, map[[2]int]int{{1024, 768}: 1, {512, 384}: 2}, sizes)

	c.Resize(Size{0, 0}, Size{0, 0})
	assert.Equal(t, Size{1, 1}, c.RenderSize())
}

func TestComposerPartialFailureReleasesEverything(t *testing.T) {
	dev := gputest.New()
	dev.FailAfter = 5
	res := gpu.NewResources(nil)
	bloom := DefaultBloom

	_, err := NewComposer(dev, res, &bloom, Size{800, 600}, Size{800, 600})
	require.Error(t, err)
	assert.Equal(t, 4, dev.Live())

	res.Release()
	assert.Zero(t, dev.Live())
}
