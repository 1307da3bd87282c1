package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHex(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Color
	}{
		{name: "white", in: "#ffffff", want: Color{1, 1, 1}},
		{name: "upper case", in: "#FF0000", want: Color{1, 0, 0}},
		{name: "missing hash", in: "ffffff", want: Color{}},
		{name: "bad digit", in: "#gg0000", want: Color{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Hex(tt.in))
		})
	}
}

func TestColorLerp(t *testing.T) {
	c := Color{0, 0, 0}.Lerp(Color{1, 0.5, 0}, 0.5)
	assert.InDelta(t, 0.5, c.R, 1e-6)
	assert.InDelta(t, 0.25, c.G, 1e-6)
	assert.InDelta(t, 0, c.B, 1e-6)
}

func TestFieldAccessors(t *testing.T) {
	f := NewField(2)
	assert.Len(t, f.Positions, 6)
	assert.Len(t, f.Velocities, 6)

	f.Place(1, 3, 0, 4, 0, 2, 0)

	x, y, z := f.Position(1)
	assert.Equal(t, []float32{3, 0, 4}, []float32{x, y, z})
	assert.InDelta(t, 5, f.Distance(1), 1e-6)
	assert.InDelta(t, 2, f.Speed(1), 1e-6)
	assert.Zero(t, f.Distance(0))
}

func TestNegativeFieldCount(t *testing.T) {
	f := NewField(-3)
	assert.Zero(t, f.Count)
	assert.Empty(t, f.Positions)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "paused", Paused.String())
	assert.Equal(t, "disposed", Disposed.String())
	assert.Equal(t, "unknown", State(42).String())
}
