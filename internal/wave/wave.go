// Package wave generates the sine-ribbon strands of the silk backdrop.
//
// Each strand keeps a handful of constants chosen at creation and a flat
// vertex slice that is rewritten in place every frame. Horizontal sample
// positions never move; only height and depth animate.
package wave

import (
	"math"
	"math/rand/v2"
)

type Params struct {
	Strands         int
	PointsPerStrand int
	TimeScale       float32
	Width           float32
	Height          float32
	DepthBase       float32
	DepthAmplitude  float32
}

var DefaultParams = Params{
	Strands:         50,
	PointsPerStrand: 100,
	TimeScale:       0.15,
	Width:           16,
	Height:          8,
	DepthBase:       -2,
	DepthAmplitude:  1.5,
}

type Strand struct {
	Index     int
	Phase     float32
	Frequency float32
	Amplitude float32
	BaseY     float32
	Opacity   float32
	// Tint is how far the strand's colour leans from base toward bright.
	Tint float32

	Points []float32
	Dirty  bool
}

// NewStrands lays out p.Strands strands from bottom to top.
func NewStrands(rng *rand.Rand, p Params) []Strand {
	strands := make([]Strand, p.Strands)
	for i := range strands {
		t := fraction(i, p.Strands)
		strands[i] = Strand{
			Index:     i,
			Phase:     t*math.Pi*4 + rng.Float32()*2,
			Frequency: 0.8 + rng.Float32()*0.5,
			Amplitude: 0.15 + rng.Float32()*0.2,
			BaseY:     (t - 0.5) * p.Height,
			Opacity:   0.03 + float32(math.Sin(float64(t)*math.Pi))*0.15,
			Tint:      t * 0.3,
			Points:    make([]float32, p.PointsPerStrand*3),
		}
	}
	return strands
}

// Compute rewrites the strand's points for the given elapsed time.
func (s *Strand) Compute(elapsed float32, p Params) {
	phase := float64(elapsed*p.TimeScale + s.Phase)
	n := len(s.Points) / 3
	for j := range n {
		jt := fraction(j, n)
		x := (jt - 0.5) * p.Width
		y := s.BaseY + float32(math.Sin(float64(x*s.Frequency)+phase))*s.Amplitude
		z := p.DepthBase + float32(math.Sin(float64(jt)*math.Pi*0.5+float64(s.Phase)*0.3))*p.DepthAmplitude

		s.Points[j*3] = x
		s.Points[j*3+1] = y
		s.Points[j*3+2] = z
	}
	s.Dirty = true
}

func fraction(i, n int) float32 {
	if n <= 1 {
		return 0
	}
	return float32(i) / float32(n-1)
}

type Generator struct {
	params  Params
	strands []Strand
}

func NewGenerator(rng *rand.Rand, p Params) *Generator {
	return &Generator{params: p, strands: NewStrands(rng, p)}
}

func (g *Generator) Params() Params {
	return g.params
}

func (g *Generator) Strands() []Strand {
	return g.strands
}

// Update recomputes every strand for elapsed seconds of animation time.
func (g *Generator) Update(elapsed float32) {
	for i := range g.strands {
		g.strands[i].Compute(elapsed, g.params)
	}
}

// Flush hands each dirty strand to upload and clears its flag.
func (g *Generator) Flush(upload func(i int, points []float32)) {
	for i := range g.strands {
		s := &g.strands[i]
		if !s.Dirty {
			continue
		}
		upload(i, s.Points)
		s.Dirty = false
	}
}
