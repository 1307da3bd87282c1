package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
)

const EnvPrefix = "BACKDROP_"

// Constrained modes.
const (
	ConstrainedAuto = "auto"
	ConstrainedOn   = "on"
	ConstrainedOff  = "off"
)

type Settings struct {
	Effect              string  `json:"effect" env:"EFFECT"`
	Seed                uint64  `json:"seed" env:"SEED"`
	Width               int     `json:"width" env:"WIDTH"`
	Height              int     `json:"height" env:"HEIGHT"`
	Particles           int     `json:"particles" env:"PARTICLES"`
	Gravity             float32 `json:"gravity" env:"GRAVITY"`
	Strands             int     `json:"strands" env:"STRANDS"`
	Bloom               bool    `json:"bloom" env:"BLOOM"`
	MaxPixelRatio       float64 `json:"max_pixel_ratio" env:"MAX_PIXEL_RATIO"`
	VisibilityThreshold float64 `json:"visibility_threshold" env:"VISIBILITY_THRESHOLD"`
	Constrained         string  `json:"constrained" env:"CONSTRAINED"`
}

func Defaults() Settings {
	return Settings{
		Effect:              "lens",
		Seed:                1,
		Width:               1280,
		Height:              720,
		Particles:           600,
		Gravity:             8,
		Strands:             50,
		Bloom:               true,
		MaxPixelRatio:       2,
		VisibilityThreshold: 0.05,
		Constrained:         ConstrainedAuto,
	}
}

// SettingsPath is ~/.config/backdrop/settings.json. The directory is created
// if missing.
func SettingsPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(homeDir, ".config", "backdrop")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "settings.json"), nil
}

// Load reads settings from path, writing a default file when none exists,
// then applies BACKDROP_* environment overrides. Out-of-range values fall
// back to their defaults with a warning.
func Load(path string, log *zap.Logger) (*Settings, error) {
	if log == nil {
		log = zap.NewNop()
	}
	defaults := Defaults()
	settings := defaults

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Info("creating default settings file", zap.String("path", path))
		if err := createDefaultSettings(path, &defaults); err != nil {
			log.Warn("failed to create default settings file", zap.Error(err))
		}
	case err != nil:
		return nil, err
	default:
		decode(data, &settings, log)
	}

	if err := env.ParseWithOptions(&settings, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	validate(&settings, defaults, log)
	return &settings, nil
}

func decode(data []byte, settings *Settings, log *zap.Logger) {
	// Check for unrecognised keys
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Warn("invalid settings file, using defaults", zap.Error(err))
		return
	}

	known := knownKeys(Settings{})
	for key := range raw {
		if !known[key] {
			log.Warn("unrecognised setting key", zap.String("key", key))
		}
	}

	parsed := *settings
	if err := json.Unmarshal(data, &parsed); err != nil {
		log.Warn("invalid settings file, using defaults", zap.Error(err))
		return
	}
	*settings = parsed
}

func validate(s *Settings, d Settings, log *zap.Logger) {
	reset := func(key string, got, def any) {
		log.Warn("invalid setting, using default",
			zap.String("key", key), zap.Any("value", got), zap.Any("default", def))
	}

	if s.Width <= 0 {
		reset("width", s.Width, d.Width)
		s.Width = d.Width
	}
	if s.Height <= 0 {
		reset("height", s.Height, d.Height)
		s.Height = d.Height
	}
	if s.Particles < 1 || s.Particles > 100_000 {
		reset("particles", s.Particles, d.Particles)
		s.Particles = d.Particles
	}
	if s.Gravity <= 0 {
		reset("gravity", s.Gravity, d.Gravity)
		s.Gravity = d.Gravity
	}
	if s.Strands < 1 || s.Strands > 1000 {
		reset("strands", s.Strands, d.Strands)
		s.Strands = d.Strands
	}
	if s.MaxPixelRatio < 1 || s.MaxPixelRatio > 4 {
		reset("max_pixel_ratio", s.MaxPixelRatio, d.MaxPixelRatio)
		s.MaxPixelRatio = d.MaxPixelRatio
	}
	if s.VisibilityThreshold < 0 || s.VisibilityThreshold > 1 {
		reset("visibility_threshold", s.VisibilityThreshold, d.VisibilityThreshold)
		s.VisibilityThreshold = d.VisibilityThreshold
	}
	switch s.Constrained {
	case ConstrainedAuto, ConstrainedOn, ConstrainedOff:
	default:
		reset("constrained", s.Constrained, d.Constrained)
		s.Constrained = d.Constrained
	}
}

func createDefaultSettings(path string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func knownKeys(v any) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			// Handle json tags like "field,omitempty"
			tagName := strings.Split(jsonTag, ",")[0]
			if tagName != "-" {
				keys[tagName] = true
			}
		}
	}
	return keys
}
