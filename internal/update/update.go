package update

import (
	"math"

	"github.com/halcyonpartners/backdrop/internal/models"
	"github.com/halcyonpartners/backdrop/internal/spawn"
)

type Simulator struct {
	field   *models.Field
	params  models.FieldParams
	spawner *spawn.Spawner
}

func New(field *models.Field, params models.FieldParams, spawner *spawn.Spawner) *Simulator {
	return &Simulator{field: field, params: params, spawner: spawner}
}

func (s *Simulator) Field() *models.Field {
	return s.field
}

// ClampDelta bounds a raw frame delta to [0, ceiling].
func ClampDelta(dt, ceiling float32) float32 {
	if dt < 0 || dt != dt {
		return 0
	}
	if dt > ceiling {
		return ceiling
	}
	return dt
}

// Step advances every particle by one frame and returns how many were
// respawned. After Step each particle lies within [MinRadius, MaxRadius].
func (s *Simulator) Step(dt float32) int {
	p := s.params
	dt = ClampDelta(dt, p.MaxDelta)

	pos := s.field.Positions
	vel := s.field.Velocities
	respawned := 0

	for i := range s.field.Count {
		ix := i * 3
		x, y, z := pos[ix], pos[ix+1], pos[ix+2]
		dist := length(x, y, z)

		if dist < p.MinRadius || dist > p.MaxRadius {
			s.spawner.Respawn(s.field, i)
			respawned++
			continue
		}

		invDist := 1 / max(dist, p.DistanceFloor)
		force := p.GravityStrength * invDist * invDist
		vel[ix] -= x * invDist * force * dt
		vel[ix+1] -= y * invDist * force * dt * p.VerticalPull
		vel[ix+2] -= z * invDist * force * dt

		vel[ix] *= p.DampingXZ
		vel[ix+1] *= p.DampingY
		vel[ix+2] *= p.DampingXZ

		pos[ix] += vel[ix] * dt
		pos[ix+1] += vel[ix+1] * dt
		pos[ix+2] += vel[ix+2] * dt

		if d := length(pos[ix], pos[ix+1], pos[ix+2]); d < p.MinRadius || d > p.MaxRadius {
			s.spawner.Respawn(s.field, i)
			respawned++
		}
	}

	return respawned
}

func length(x, y, z float32) float32 {
	return float32(math.Sqrt(float64(x*x + y*y + z*z)))
}
