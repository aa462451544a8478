package config

import (
	"math"
	"sort"
)

var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"fast": func() *Config {
		c := DefaultConfig()
		c.Speed = 4.0
		return c
	}(),
	"slow": func() *Config {
		c := DefaultConfig()
		c.Speed = MinSpeed
		return c
	}(),
	"quiet": func() *Config {
		c := DefaultConfig()
		c.Sound = false
		c.ShowInstructions = false
		return c
	}(),
	// Moon starts between the sun and Earth, so the first frame is an eclipse.
	"aligned": func() *Config {
		c := DefaultConfig()
		c.Seed = 1
		c.StartAngles = map[string]float64{
			"mercury": math.Pi / 2,
			"venus":   math.Pi,
			"earth":   0,
			"mars":    3 * math.Pi / 2,
			"moon":    math.Pi,
		}
		return c
	}(),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
