package config

import "sort"

var Presets = map[string]*Config{
	"classic": {
		Size: 100, MinValue: 5, MaxValue: 100, FPS: 60, Pacing: 1.0,
		LatencyUnitMS: 50, Theme: "classic",
	},
	"quick": {
		Size: 40, MinValue: 5, MaxValue: 60, FPS: 60, Pacing: 0.25,
		LatencyUnitMS: 10, Theme: "ocean",
		Algorithms: []string{"bubble", "insertion", "quick", "merge", "selection", "cocktail"},
	},
	"comedy": {
		Size: 30, MinValue: 5, MaxValue: 50, FPS: 30, Pacing: 1.0,
		LatencyUnitMS: 50, Theme: "sunset",
		Algorithms: []string{"miracle", "sleep", "quantum", "brutal", "stalin", "bogo"},
	},
	"stress": {
		Size: 500, MinValue: 1, MaxValue: 500, FPS: 60, Pacing: 0.1,
		LatencyUnitMS: 2, Theme: "minimal",
	},
}

// GetPreset returns a copy of the named preset merged over the defaults, or
// nil if there is no such preset.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Size = p.Size
	cfg.MinValue = p.MinValue
	cfg.MaxValue = p.MaxValue
	cfg.FPS = p.FPS
	cfg.Pacing = p.Pacing
	cfg.LatencyUnitMS = p.LatencyUnitMS
	cfg.Theme = p.Theme
	cfg.Algorithms = append([]string(nil), p.Algorithms...)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
