package wave

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGenerator(seed uint64) *Generator {
	return NewGenerator(rand.New(rand.NewPCG(seed, seed)), DefaultParams)
}

func TestStrandConstants(t *testing.T) {
	g := newGenerator(1)
	strands := g.Strands()
	require.Len(t, strands, DefaultParams.Strands)

	assert.InDelta(t, -4, strands[0].BaseY, 1e-5)
	assert.InDelta(t, 4, strands[len(strands)-1].BaseY, 1e-5)

	for _, s := range strands {
		assert.Len(t, s.Points, DefaultParams.PointsPerStrand*3)
		assert.GreaterOrEqual(t, s.Frequency, float32(0.8))
		assert.Less(t, s.Frequency, float32(1.3))
		assert.GreaterOrEqual(t, s.Amplitude, float32(0.15))
		assert.Less(t, s.Amplitude, float32(0.35))
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	g := newGenerator(2)
	s := &g.Strands()[7]

	s.Compute(3.25, g.Params())
	first := append([]float32(nil), s.Points...)

	s.Compute(9.0, g.Params())
	s.Compute(3.25, g.Params())

	assert.Equal(t, first, s.Points)
}

func TestHorizontalPositionsAreStationary(t *testing.T) {
	g := newGenerator(3)
	p := g.Params()
	s := &g.Strands()[0]

	s.Compute(0, p)
	xs := make([]float32, 0, p.PointsPerStrand)
	for j := range p.PointsPerStrand {
		xs = append(xs, s.Points[j*3])
	}

	s.Compute(123, p)
	for j := range p.PointsPerStrand {
		assert.Equal(t, xs[j], s.Points[j*3])
	}
	assert.InDelta(t, -p.Width/2, xs[0], 1e-5)
	assert.InDelta(t, p.Width/2, xs[len(xs)-1], 1e-5)
}

func TestComputeFollowsWaveEquation(t *testing.T) {
	g := newGenerator(4)
	p := g.Params()
	s := &g.Strands()[10]
	elapsed := float32(2.5)
	s.Compute(elapsed, p)

	j := 37
	jt := float64(j) / float64(p.PointsPerStrand-1)
	x := (jt - 0.5) * float64(p.Width)
	wantY := float64(s.BaseY) + math.Sin(x*float64(s.Frequency)+float64(elapsed*p.TimeScale+s.Phase))*float64(s.Amplitude)
	wantZ := float64(p.DepthBase) + math.Sin(jt*math.Pi*0.5+float64(s.Phase)*0.3)*float64(p.DepthAmplitude)

	assert.InDelta(t, wantY, s.Points[j*3+1], 1e-4)
	assert.InDelta(t, wantZ, s.Points[j*3+2], 1e-4)
}

func TestFlushClearsDirty(t *testing.T) {
	g := newGenerator(5)
	g.Update(1)

	var uploaded int
	g.Flush(func(i int, points []float32) {
		uploaded++
		assert.Len(t, points, DefaultParams.PointsPerStrand*3)
	})
	assert.Equal(t, DefaultParams.Strands, uploaded)

	uploaded = 0
	g.Flush(func(int, []float32) { uploaded++ })
	assert.Zero(t, uploaded)
}

func TestUpdateDoesNotAllocate(t *testing.T) {
	g := newGenerator(6)
	allocs := testing.AllocsPerRun(20, func() {
		g.Update(4.2)
	})
	assert.Zero(t, allocs)
}
