package effect

import (
	"image"

	"go.uber.org/zap"

	"github.com/halcyonpartners/backdrop/internal/config"
	"github.com/halcyonpartners/backdrop/internal/gpu"
)

type Variant int

const (
	Animated Variant = iota
	Static
)

func (v Variant) String() string {
	if v == Animated {
		return "animated"
	}
	return "static"
}

// Probe reports whether the host can render with the GPU.
type Probe func() bool

// Mounted is whichever variant Mount settled on. Exactly one of Handle and
// Still is set.
type Mounted struct {
	Variant Variant
	Handle  *Handle
	Still   *image.RGBA
}

func (m *Mounted) Dispose() {
	if m != nil {
		m.Handle.Dispose()
	}
}

// Mount asks probe once and mounts the animated scene when the GPU is
// usable. Otherwise, or when construction fails, it paints the static
// substitute at the host's logical size and never requests a frame.
func Mount(host Host, probe Probe, dev gpu.Device, st Strategy, s config.Settings, log *zap.Logger) *Mounted {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("effect", st.Name))

	if probe() {
		h, err := Create(host, dev, st.New(s), OptionsFrom(s), log)
		if err == nil {
			return &Mounted{Variant: Animated, Handle: h}
		}
		log.Warn("falling back to static variant", zap.Error(err))
	} else {
		log.Info("gpu rendering unavailable, using static variant")
	}

	w, h := host.Size()
	return &Mounted{Variant: Static, Still: st.Still(max(w, 1), max(h, 1))}
}
