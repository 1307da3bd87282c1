package spawn

import (
	"math"
	"math/rand/v2"

	"github.com/halcyonpartners/backdrop/internal/models"
)

type Spawner struct {
	rng    *rand.Rand
	params models.FieldParams
}

func New(rng *rand.Rand, params models.FieldParams) *Spawner {
	return &Spawner{rng: rng, params: params}
}

// Seeded returns a spawner driven by a PCG source, so equal seeds give equal
// fields.
func Seeded(seed uint64, params models.FieldParams) *Spawner {
	return New(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), params)
}

// Seed fills every slot of f with a particle somewhere between the minimum
// and spawn radius, moving tangentially.
func (s *Spawner) Seed(f *models.Field) {
	p := s.params
	for i := range f.Count {
		angle := s.rng.Float64() * 2 * math.Pi
		r := p.MinRadius + s.rng.Float32()*(p.SpawnRadius-p.MinRadius)
		y := (s.rng.Float32() - 0.5) * 4
		speed := 1.5 + s.rng.Float32()*2.0
		vy := (s.rng.Float32() - 0.5) * 0.3
		s.place(f, i, angle, r, y, speed, vy)
	}
}

// Respawn reinitialises slot i on the outer part of the spawn ring.
func (s *Spawner) Respawn(f *models.Field, i int) {
	angle := s.rng.Float64() * 2 * math.Pi
	r := s.params.SpawnRadius * (0.7 + s.rng.Float32()*0.3)
	y := (s.rng.Float32() - 0.5) * 3
	speed := 1.5 + s.rng.Float32()*2.0
	vy := (s.rng.Float32() - 0.5) * 0.2
	s.place(f, i, angle, r, y, speed, vy)
}

func (s *Spawner) place(f *models.Field, i int, angle float64, r, y, speed, vy float32) {
	sin, cos := math.Sincos(angle)
	f.Place(i,
		float32(cos)*r, y, float32(sin)*r,
		-float32(sin)*speed, vy, float32(cos)*speed,
	)
}
