package main

import (
	"fmt"
	"os"

	"github.com/mcuadros/go-defaults"
	"gopkg.in/yaml.v3"
)

// Config is the controller configuration. Every field has a sensible
// default; a YAML file overrides selectively.
type Config struct {
	Fan struct {
		PulsesPerRevolution uint32 `yaml:"pulses_per_revolution" default:"2"`
	} `yaml:"fan"`
	Policy struct {
		CooldownSeconds uint16 `yaml:"cooldown_seconds" default:"900"`
		VOCPassiveMax   uint16 `yaml:"voc_passive_max" default:"250"`
		VOCImproveMin   uint16 `yaml:"voc_improve_min" default:"5"`
	} `yaml:"policy"`
}

// loadConfig reads path when non-empty, otherwise returns the defaults.
func loadConfig(path string) (*Config, error) {
	cfg := new(Config)
	defaults.SetDefaults(cfg)
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
