package config

import (
	"os"
	"strconv"
)

// FromEnv overlays SYNCLINE_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("SYNCLINE_RETENTION_CAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RetentionCap = n
		}
	}
	if v := os.Getenv("SYNCLINE_ARCHIVE_EVICTED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ArchiveEvicted = b
		}
	}
	if v := os.Getenv("SYNCLINE_POLL_RATE_PER_SEC"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.PollRatePerSec = f
		}
	}
	if v := os.Getenv("SYNCLINE_POLL_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PollBurst = n
		}
	}
	if v := os.Getenv("SYNCLINE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SYNCLINE_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}
