package models

import "math"

// Color is a linear RGB triple in [0, 1].
type Color struct {
	R, G, B float32
}

// Hex parses a "#rrggbb" string. Malformed input yields black.
func Hex(s string) Color {
	if len(s) != 7 || s[0] != '#' {
		return Color{}
	}
	var v [3]float32
	for i := range 3 {
		hi, ok1 := nibble(s[1+i*2])
		lo, ok2 := nibble(s[2+i*2])
		if !ok1 || !ok2 {
			return Color{}
		}
		v[i] = float32(hi<<4|lo) / 255
	}
	return Color{R: v[0], G: v[1], B: v[2]}
}

func nibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Lerp mixes c toward o by t.
func (c Color) Lerp(o Color, t float32) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
	}
}

type Palette struct {
	Base     Color
	Bright   Color
	Dim      Color
	Backdrop Color
}

var DefaultPalette = Palette{
	Base:     Hex("#8a9e8f"),
	Bright:   Hex("#a3b5a8"),
	Dim:      Hex("#0c1220"),
	Backdrop: Hex("#080e1a"),
}

// FieldParams tunes the particle field. Radii are in world units, times in
// seconds.
type FieldParams struct {
	Count           int
	GravityStrength float32
	MinRadius       float32
	MaxRadius       float32
	SpawnRadius     float32
	MaxDelta        float32
	DistanceFloor   float32
	VerticalPull    float32
	DampingXZ       float32
	DampingY        float32
}

var DefaultFieldParams = FieldParams{
	Count:           600,
	GravityStrength: 8.0,
	MinRadius:       0.3,
	MaxRadius:       12.0,
	SpawnRadius:     10.0,
	MaxDelta:        0.05,
	DistanceFloor:   0.1,
	VerticalPull:    0.3,
	DampingXZ:       0.999,
	DampingY:        0.995,
}

// Field stores particle state as parallel flat slices, three floats per
// particle. Both slices are allocated once and mutated in place.
type Field struct {
	Positions  []float32
	Velocities []float32
	Count      int
}

func NewField(count int) *Field {
	if count < 0 {
		count = 0
	}
	return &Field{
		Positions:  make([]float32, count*3),
		Velocities: make([]float32, count*3),
		Count:      count,
	}
}

func (f *Field) Position(i int) (x, y, z float32) {
	ix := i * 3
	return f.Positions[ix], f.Positions[ix+1], f.Positions[ix+2]
}

func (f *Field) Velocity(i int) (x, y, z float32) {
	ix := i * 3
	return f.Velocities[ix], f.Velocities[ix+1], f.Velocities[ix+2]
}

// Distance is the particle's distance from the origin.
func (f *Field) Distance(i int) float32 {
	x, y, z := f.Position(i)
	return float32(math.Sqrt(float64(x*x + y*y + z*z)))
}

// Speed is the magnitude of the particle's velocity.
func (f *Field) Speed(i int) float32 {
	x, y, z := f.Velocity(i)
	return float32(math.Sqrt(float64(x*x + y*y + z*z)))
}

// Place overwrites the state of particle i.
func (f *Field) Place(i int, px, py, pz, vx, vy, vz float32) {
	ix := i * 3
	f.Positions[ix], f.Positions[ix+1], f.Positions[ix+2] = px, py, pz
	f.Velocities[ix], f.Velocities[ix+1], f.Velocities[ix+2] = vx, vy, vz
}

// State is the lifecycle stage of an animated effect instance.
type State int

const (
	Uninitialized State = iota
	Constructing
	Running
	Paused
	Disposing
	Disposed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Constructing:
		return "constructing"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Disposing:
		return "disposing"
	case Disposed:
		return "disposed"
	}
	return "unknown"
}
