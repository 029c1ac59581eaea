package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFormat      = "text"
	DefaultIndent      = 2
	DefaultPattern     = "*.physics3.json"
	DefaultWorkers     = 4
	DefaultPlotWidth   = 60
	DefaultPlotHeight  = 12
	DefaultPlotSamples = 121
	DefaultSVGWidth    = 320
	DefaultSVGHeight   = 480
	DefaultSVGStroke   = "#00ccff"
)

var formats = map[string]bool{"text": true, "json": true, "yaml": true}

type Config struct {
	Strict  bool       `yaml:"strict"`
	Format  string     `yaml:"format"`
	Indent  int        `yaml:"indent"`
	Pattern string     `yaml:"pattern"`
	Workers int        `yaml:"workers"`
	Plot    PlotConfig `yaml:"plot"`
	SVG     SVGConfig  `yaml:"svg"`
}

type PlotConfig struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	Samples int `yaml:"samples"`
}

type SVGConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Stroke string `yaml:"stroke"`
}

func DefaultConfig() *Config {
	return &Config{
		Format:  DefaultFormat,
		Indent:  DefaultIndent,
		Pattern: DefaultPattern,
		Workers: DefaultWorkers,
		Plot: PlotConfig{
			Width:   DefaultPlotWidth,
			Height:  DefaultPlotHeight,
			Samples: DefaultPlotSamples,
		},
		SVG: SVGConfig{
			Width:  DefaultSVGWidth,
			Height: DefaultSVGHeight,
			Stroke: DefaultSVGStroke,
		},
	}
}

// Load reads a YAML config on top of the defaults, so omitted keys keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
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
	if !formats[c.Format] {
		return fmt.Errorf("unknown format %q (want text, json or yaml)", c.Format)
	}
	if c.Indent < 0 {
		return fmt.Errorf("indent must not be negative, got %d", c.Indent)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Plot.Width <= 0 || c.Plot.Height <= 0 || c.Plot.Samples < 2 {
		return fmt.Errorf("invalid plot size %dx%d with %d samples", c.Plot.Width, c.Plot.Height, c.Plot.Samples)
	}
	if c.SVG.Width <= 0 || c.SVG.Height <= 0 {
		return fmt.Errorf("invalid svg size %dx%d", c.SVG.Width, c.SVG.Height)
	}
	return nil
}

// IndentString renders Indent as the whitespace passed to JSON encoders.
func (c *Config) IndentString() string {
	return strings.Repeat(" ", c.Indent)
}
