package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Preset is the persisted form of a user's visual preferences. The host
// (CLI, or an app syncing settings from its own storage) reads one and
// passes the values into the engine as plain parameters.
type Preset struct {
	Version    string  `yaml:"version"`
	Mode       string  `yaml:"mode"`
	LoopPeriod float64 `yaml:"loop_period"` // seconds
	Width      int     `yaml:"width,omitempty"`
	Height     int     `yaml:"height,omitempty"`
	FPS        int     `yaml:"fps,omitempty"`
	Duration   float64 `yaml:"duration,omitempty"` // export seconds, 0 = one loop
}

// WritePreset writes a preset to a YAML file.
func WritePreset(p *Preset, path string) error {
	if p.Version == "" {
		p.Version = "1.0"
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadPreset reads a preset from a YAML file.
func ReadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Apply overlays the preset's non-zero fields onto a config.
func (p *Preset) Apply(cfg *Config) {
	if p.Mode != "" {
		cfg.Mode = p.Mode
	}
	if p.LoopPeriod > 0 {
		cfg.LoopPeriod = p.LoopPeriod
	}
	if p.Width > 0 {
		cfg.Width = p.Width
	}
	if p.Height > 0 {
		cfg.Height = p.Height
	}
	if p.FPS > 0 {
		cfg.FPS = p.FPS
	}
	if p.Duration > 0 {
		cfg.Duration = p.Duration
	}
}
