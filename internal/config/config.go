package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS          = 60
	DefaultSpeed        = 1.0
	DefaultThreshold    = 50.0
	DefaultDebounce     = 60
	DefaultBannerFrames = 60
	DefaultStars        = 150
	DefaultHistory      = 600
	DefaultTheme        = "classic"
	DefaultIntegrator   = "euler"

	MinSpeed  = 0.5
	MaxSpeed  = 10.0
	SpeedStep = 0.5
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Integrators lists the accepted values of the integrator key.
var Integrators = []string{"euler", "rk4"}

type Config struct {
	FPS              int                `yaml:"fps"`
	Speed            float64            `yaml:"speed"`
	Threshold        float64            `yaml:"threshold"`
	Debounce         int                `yaml:"debounce"`
	BannerFrames     int                `yaml:"banner_frames"`
	Seed             int64              `yaml:"seed"`
	Stars            int                `yaml:"stars"`
	History          int                `yaml:"history"`
	Sound            bool               `yaml:"sound"`
	Theme            string             `yaml:"theme"`
	Integrator       string             `yaml:"integrator"`
	ShowInstructions bool               `yaml:"show_instructions"`
	StartAngles      map[string]float64 `yaml:"start_angles,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		FPS:              DefaultFPS,
		Speed:            DefaultSpeed,
		Threshold:        DefaultThreshold,
		Debounce:         DefaultDebounce,
		BannerFrames:     DefaultBannerFrames,
		Stars:            DefaultStars,
		History:          DefaultHistory,
		Sound:            true,
		Theme:            DefaultTheme,
		Integrator:       DefaultIntegrator,
		ShowInstructions: true,
	}
}

// Load reads a YAML file on top of the defaults, so a file only needs the
// keys it changes.
func Load(path string) (*Config, error) {
	return LoadOnto(path, DefaultConfig())
}

// LoadOnto reads a YAML file over a copy of base.
func LoadOnto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.FPS < 1 || c.FPS > 240:
		return fmt.Errorf("%w: fps must be in [1, 240], got %d", ErrInvalidConfig, c.FPS)
	case !finite(c.Speed) || c.Speed < MinSpeed || c.Speed > MaxSpeed:
		return fmt.Errorf("%w: speed must be in [%.1f, %.1f], got %.2f", ErrInvalidConfig, MinSpeed, MaxSpeed, c.Speed)
	case !finite(c.Threshold) || c.Threshold <= 0:
		return fmt.Errorf("%w: threshold must be positive, got %.2f", ErrInvalidConfig, c.Threshold)
	case c.Debounce < 1:
		return fmt.Errorf("%w: debounce must be at least 1 frame, got %d", ErrInvalidConfig, c.Debounce)
	case c.BannerFrames < 0:
		return fmt.Errorf("%w: banner_frames must not be negative, got %d", ErrInvalidConfig, c.BannerFrames)
	case c.Stars < 0:
		return fmt.Errorf("%w: stars must not be negative, got %d", ErrInvalidConfig, c.Stars)
	case c.History < 0:
		return fmt.Errorf("%w: history must not be negative, got %d", ErrInvalidConfig, c.History)
	case !slices.Contains(Integrators, c.Integrator):
		return fmt.Errorf("%w: integrator must be one of %v, got %q", ErrInvalidConfig, Integrators, c.Integrator)
	}
	for name, angle := range c.StartAngles {
		if !finite(angle) {
			return fmt.Errorf("%w: start angle of %s must be finite, got %v", ErrInvalidConfig, name, angle)
		}
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	if c.StartAngles != nil {
		cp.StartAngles = make(map[string]float64, len(c.StartAngles))
		for k, v := range c.StartAngles {
			cp.StartAngles[k] = v
		}
	}
	return &cp
}
