package spawn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/halcyonpartners/backdrop/internal/models"
)

func TestSeedStaysInsideBand(t *testing.T) {
	p := models.DefaultFieldParams
	f := models.NewField(p.Count)
	Seeded(7, p).Seed(f)

	for i := range f.Count {
		d := f.Distance(i)
		assert.GreaterOrEqual(t, d, p.MinRadius, "particle %d", i)
		assert.LessOrEqual(t, d, p.MaxRadius, "particle %d", i)
	}
}

func TestRespawnOnOuterRing(t *testing.T) {
	p := models.DefaultFieldParams
	f := models.NewField(64)
	s := Seeded(11, p)

	for i := range f.Count {
		s.Respawn(f, i)

		x, _, z := f.Position(i)
		vx, _, vz := f.Velocity(i)
		ring := x*x + z*z
		assert.GreaterOrEqual(t, ring, (0.7*p.SpawnRadius)*(0.7*p.SpawnRadius)-1e-3)
		assert.LessOrEqual(t, ring, p.SpawnRadius*p.SpawnRadius+1e-3)

		// tangential: horizontal velocity is perpendicular to the radius
		assert.InDelta(t, 0, x*vx+z*vz, 1e-3)
	}
}

func TestSeededIsReproducible(t *testing.T) {
	p := models.DefaultFieldParams
	a, b := models.NewField(32), models.NewField(32)
	Seeded(3, p).Seed(a)
	Seeded(3, p).Seed(b)

	assert.Equal(t, a.Positions, b.Positions)
	assert.Equal(t, a.Velocities, b.Velocities)
}
