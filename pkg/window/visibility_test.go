package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisibleFraction(t *testing.T) {
	screen := []Rect{{X: 0, Y: 0, W: 1920, H: 1080}}

	tests := []struct {
		name string
		win  Rect
		want float64
	}{
		{"inside", Rect{X: 100, Y: 100, W: 800, H: 600}, 1},
		{"half off the right edge", Rect{X: 1520, Y: 0, W: 800, H: 600}, 0.5},
		{"fully off screen", Rect{X: 4000, Y: 0, W: 800, H: 600}, 0},
		{"sliver", Rect{X: 1900, Y: 0, W: 800, H: 600}, 20.0 / 800},
		{"empty window", Rect{W: 0, H: 600}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, VisibleFraction(tt.win, screen), 1e-9)
		})
	}
}

func TestVisibleFractionAcrossMonitors(t *testing.T) {
	screens := []Rect{{X: 0, Y: 0, W: 1000, H: 1000}, {X: 1000, Y: 0, W: 1000, H: 1000}}
	assert.InDelta(t, 1.0, VisibleFraction(Rect{X: 800, Y: 100, W: 400, H: 400}, screens), 1e-9)
}
