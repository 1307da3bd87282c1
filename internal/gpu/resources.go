package gpu

import "go.uber.org/zap"

type release struct {
	name string
	fn   func()
}

// Resources releases everything it tracked in reverse acquisition order.
type Resources struct {
	log      *zap.Logger
	releases []release
	released bool
}

func NewResources(log *zap.Logger) *Resources {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resources{log: log}
}

// Track registers fn to run on Release. Tracking after Release runs fn
// immediately so nothing leaks.
func (r *Resources) Track(name string, fn func()) {
	if r.released {
		r.log.Warn("resource tracked after release", zap.String("resource", name))
		fn()
		return
	}
	r.releases = append(r.releases, release{name: name, fn: fn})
}

func (r *Resources) Program(d Device, name, vertex, fragment string) (Program, error) {
	p, err := d.NewProgram(name, vertex, fragment)
	if err != nil {
		return 0, err
	}
	r.Track("program "+name, func() { d.DeleteProgram(p) })
	return p, nil
}

func (r *Resources) Mesh(d Device, name string, primitive Primitive, layout Layout, vertices []float32, usage Usage) (Mesh, error) {
	m, err := d.NewMesh(primitive, layout, vertices, usage)
	if err != nil {
		return Mesh{}, err
	}
	r.Track("mesh "+name, func() { d.DeleteMesh(m) })
	return m, nil
}

// Target allocates an offscreen target. The release reads through the
// pointer so a resized target is still freed.
func (r *Resources) Target(d Device, name string, width, height int) (*Target, error) {
	t, err := d.NewTarget(width, height)
	if err != nil {
		return nil, err
	}
	tp := &t
	r.Track("target "+name, func() { d.DeleteTarget(*tp) })
	return tp, nil
}

func (r *Resources) Len() int {
	return len(r.releases)
}

// Release frees tracked resources newest first. Further calls do nothing.
func (r *Resources) Release() {
	if r.released {
		return
	}
	r.released = true
	for i := len(r.releases) - 1; i >= 0; i-- {
		rel := r.releases[i]
		r.log.Debug("releasing", zap.String("resource", rel.name))
		rel.fn()
	}
	r.releases = nil
}
