package update

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonpartners/backdrop/internal/models"
	"github.com/halcyonpartners/backdrop/internal/spawn"
)

func newSimulator(seed uint64, params models.FieldParams) *Simulator {
	field := models.NewField(params.Count)
	spawner := spawn.Seeded(seed, params)
	spawner.Seed(field)
	return New(field, params, spawner)
}

func TestClampDelta(t *testing.T) {
	tests := []struct {
		name string
		dt   float32
		want float32
	}{
		{name: "within range", dt: 0.016, want: 0.016},
		{name: "ceiling", dt: 0.05, want: 0.05},
		{name: "hitch", dt: 10, want: 0.05},
		{name: "negative", dt: -1, want: 0},
		{name: "nan", dt: float32(math.NaN()), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampDelta(tt.dt, 0.05))
		})
	}
}

func TestStepKeepsParticlesInBand(t *testing.T) {
	p := models.DefaultFieldParams
	sim := newSimulator(42, p)

	deltas := []float32{0.016, 0.05, 0.001, 10, 0.033}
	for frame := range 2000 {
		sim.Step(deltas[frame%len(deltas)])

		f := sim.Field()
		for i := range f.Count {
			d := f.Distance(i)
			require.GreaterOrEqual(t, d, p.MinRadius, "frame %d particle %d", frame, i)
			require.LessOrEqual(t, d, p.MaxRadius, "frame %d particle %d", frame, i)
		}
	}
}

func TestLargeDeltaMatchesCeiling(t *testing.T) {
	p := models.DefaultFieldParams
	hitch := newSimulator(5, p)
	ceiling := newSimulator(5, p)

	for range 20 {
		hitch.Step(10)
		ceiling.Step(p.MaxDelta)
	}

	assert.Equal(t, ceiling.Field().Positions, hitch.Field().Positions)
	assert.Equal(t, ceiling.Field().Velocities, hitch.Field().Velocities)
}

func TestAttractionFromSpawnRing(t *testing.T) {
	p := models.DefaultFieldParams
	p.Count = 1
	p.GravityStrength = 8.0
	sim := newSimulator(1, p)

	f := sim.Field()
	f.Place(0, p.SpawnRadius, 0, 0, 0, 0, 0)
	require.InDelta(t, p.SpawnRadius, f.Distance(0), 1e-6)
	before := f.Speed(0)

	respawned := sim.Step(0.016)

	assert.Zero(t, respawned)
	assert.Greater(t, f.Speed(0), before)
	assert.GreaterOrEqual(t, f.Distance(0), p.MinRadius)
	assert.LessOrEqual(t, f.Distance(0), p.MaxRadius)

	vx, _, _ := f.Velocity(0)
	assert.Less(t, vx, float32(0), "pulled toward the origin")
}

func TestOutOfBandIsRespawned(t *testing.T) {
	p := models.DefaultFieldParams
	p.Count = 3
	sim := newSimulator(9, p)

	f := sim.Field()
	f.Place(0, 0, 0, 0, 0, 0, 0)
	f.Place(1, 50, 0, 0, 0, 0, 0)
	f.Place(2, 0.35, 0, 0, -30, 0, 0)

	assert.Equal(t, 3, sim.Step(0.016))
	for i := range f.Count {
		assert.GreaterOrEqual(t, f.Distance(i), 0.7*p.SpawnRadius-1e-3)
	}
}

func TestDistanceFloorBoundsForce(t *testing.T) {
	p := models.DefaultFieldParams
	p.Count = 1
	p.MinRadius = 0
	p.MaxRadius = 100
	sim := newSimulator(2, p)

	f := sim.Field()
	f.Place(0, 0.001, 0, 0, 0, 0, 0)
	sim.Step(0.016)

	// force is capped at GravityStrength/DistanceFloor^2
	limit := p.GravityStrength / (p.DistanceFloor * p.DistanceFloor) * 0.016
	assert.LessOrEqual(t, f.Speed(0), limit)
	assert.False(t, math.IsInf(float64(f.Speed(0)), 0))
}

func TestStepDoesNotAllocate(t *testing.T) {
	sim := newSimulator(3, models.DefaultFieldParams)
	allocs := testing.AllocsPerRun(50, func() {
		sim.Step(0.016)
	})
	assert.Zero(t, allocs)
}
