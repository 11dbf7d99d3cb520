package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// demoConfig controls the runtime features the demo exercises. All
// fields are optional; a missing file yields the defaults.
type demoConfig struct {
	AltScreen bool   `yaml:"alt_screen"`
	Mouse     bool   `yaml:"mouse"`
	FPS       int    `yaml:"fps"`
	TickMs    int    `yaml:"tick_ms"`
	LogFile   string `yaml:"log_file"`
}

func defaultDemoConfig() demoConfig {
	return demoConfig{
		AltScreen: true,
		Mouse:     true,
		FPS:       60,
		TickMs:    250,
		LogFile:   "reactor-demo.log",
	}
}

// loadConfig reads path if it exists, layering it over the defaults.
// A missing file is not an error; a malformed one is.
func loadConfig(path string) (demoConfig, error) {
	cfg := defaultDemoConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	if cfg.TickMs <= 0 {
		cfg.TickMs = 250
	}
	return cfg, nil
}
