package config

import "sort"

// Presets are keyed by system, then by preset name.
var Presets = map[string]map[string]*Config{
	"solar": {
		"century": {
			System: "solar", Integrator: "parabolic", Dt: 36, Steps: 1000,
			Reference: "solar", Record: 10,
		},
		"fine": {
			System: "solar", Integrator: "parabolic", Dt: 1, Steps: 36000,
			Reference: "solar", Record: 100,
		},
		"naive": {
			System: "solar", Integrator: "naive", Dt: 1, Steps: 36000,
			Reference: "solar", Record: 100,
		},
	},
	"sunearth": {
		"year": {
			System: "sunearth", Integrator: "parabolic", Dt: 1, Steps: 365,
			Record: 1,
		},
		"fine": {
			System: "sunearth", Integrator: "parabolic", Dt: 0.05, Steps: 7300,
			Record: 20,
		},
		"decade": {
			System: "sunearth", Integrator: "averaged", Dt: 1, Steps: 3652,
			Record: 5,
		},
	},
}

// GetPreset returns a copy of the named preset with the ambient fields
// filled from the defaults, or nil.
func GetPreset(system, preset string) *Config {
	systemPresets, ok := Presets[system]
	if !ok {
		return nil
	}
	p, ok := systemPresets[preset]
	if !ok {
		return nil
	}

	cfg := *p
	def := DefaultConfig()
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if cfg.DataDir == "" {
		cfg.DataDir = def.DataDir
	}
	return &cfg
}

// ListPresets returns the preset names of a system in sorted order.
func ListPresets(system string) []string {
	systemPresets, ok := Presets[system]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(systemPresets))
	for name := range systemPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
