package config

import "sort"

// Profiles are named configurations selectable with --profile.
var Profiles = map[string]func() *Config{
	"default": DefaultConfig,
	"strict": func() *Config {
		cfg := DefaultConfig()
		cfg.Strict = true
		return cfg
	},
	"ci": func() *Config {
		cfg := DefaultConfig()
		cfg.Strict = true
		cfg.Format = "json"
		cfg.Indent = 0
		cfg.Workers = 8
		return cfg
	},
	"compact": func() *Config {
		cfg := DefaultConfig()
		cfg.Indent = 0
		cfg.Plot = PlotConfig{Width: 40, Height: 8, Samples: 41}
		cfg.SVG = SVGConfig{Width: 160, Height: 240, Stroke: DefaultSVGStroke}
		return cfg
	},
}

// GetProfile returns a fresh copy of the named profile, or nil.
func GetProfile(name string) *Config {
	fn, ok := Profiles[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListProfiles() []string {
	names := make([]string, 0, len(Profiles))
	for name := range Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
