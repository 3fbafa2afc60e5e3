package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	// RetentionCap is the maximum number of events retained per resource.
	RetentionCap int `json:"retentionCap"`
	// ArchiveEvicted enables the Pebble-backed archive for events dropped by
	// retention. The live log stays in-memory either way.
	ArchiveEvicted bool `json:"archiveEvicted"`
	// PollRatePerSec limits sync-polling requests accepted per second.
	// Zero disables the limiter.
	PollRatePerSec float64 `json:"pollRatePerSec"`
	// PollBurst is the limiter's burst allowance when PollRatePerSec > 0.
	PollBurst int `json:"pollBurst"`
	// Log carries the logger level/format defaults.
	Log LogDefaults `json:"log"`
}

// LogDefaults captures logger configuration.
type LogDefaults struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		RetentionCap:   10000,
		ArchiveEvicted: false,
		PollRatePerSec: 0,
		PollBurst:      50,
		Log:            LogDefaults{Level: "info", Format: "text"},
	}
}

// Load reads configuration from a JSON file. If path is empty, returns
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
