package effect

import (
	"fmt"
	"image"
	"sort"

	"github.com/halcyonpartners/backdrop/internal/config"
	"github.com/halcyonpartners/backdrop/internal/fallback"
	"github.com/halcyonpartners/backdrop/internal/lens"
	"github.com/halcyonpartners/backdrop/internal/silk"
)

// Strategy is a named effect: how to build its animated scene and how to
// paint its static substitute.
type Strategy struct {
	Name        string
	Description string
	// Glow reports whether the animated scene composes with bloom by default.
	Glow        bool
	New         func(s config.Settings) Scene
	Still       func(width, height int) *image.RGBA
}

var registry = map[string]Strategy{
	lens.Name: {
		Name:        lens.Name,
		Description: "particles falling around a dark void",
		Glow:        true,
		New:         newLens,
		Still:       fallback.Lens,
	},
	silk.Name: {
		Name:        silk.Name,
		Description: "slow translucent sine threads",
		New:         newSilk,
		Still:       fallback.Silk,
	},
}

func newLens(s config.Settings) Scene {
	p := lens.DefaultParams()
	p.Field.Count = s.Particles
	p.Field.GravityStrength = s.Gravity
	if !s.Bloom {
		p.Bloom = nil
	}
	return lens.New(p, s.Seed)
}

func newSilk(s config.Settings) Scene {
	p := silk.DefaultParams()
	p.Wave.Strands = s.Strands
	return silk.New(p, s.Seed)
}

func Lookup(name string) (Strategy, error) {
	st, ok := registry[name]
	if !ok {
		return Strategy{}, fmt.Errorf("unknown effect %q", name)
	}
	return st, nil
}

// Strategies lists every registered effect by name.
func Strategies() []Strategy {
	out := make([]Strategy, 0, len(registry))
	for _, st := range registry {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// OptionsFrom maps settings onto lifecycle options.
func OptionsFrom(s config.Settings) Options {
	opts := DefaultOptions()
	opts.VisibilityThreshold = s.VisibilityThreshold
	opts.MaxPixelRatio = s.MaxPixelRatio
	opts.ConstrainedPixelRatio = min(opts.ConstrainedPixelRatio, s.MaxPixelRatio)
	switch s.Constrained {
	case config.ConstrainedOn:
		opts.Constraint = ConstraintAlways
	case config.ConstrainedOff:
		opts.Constraint = ConstraintNever
	}
	return opts
}
