package config

import "time"

// Config holds runtime settings for the task tracker CLI.
//
// Fields:
//   - DatabaseDSN: path of the local sqlite database file.
//   - SessionValidityDuration: how long a created session stays valid.
type Config struct {
	DatabaseDSN             string
	SessionValidityDuration time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "tasktracker.db"
	c.SessionValidityDuration = 24 * time.Hour
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
