// Package config handles configuration for the server component,
// including defaults, environment variables, JSON overlay, and
// command-line flags.
package config

import "time"

// Config holds runtime settings for the lynkc server.
//
// Fields:
//   - BindAddress: host:port the HTTP API listens on.
//   - RedisURL: connection URL for the Redis channel store.
//   - PublicBaseURL: base URL used when composing shareable channel links.
//   - ChannelTTL: idle lifetime of a channel; every read or write resets it.
//   - Env: "production" switches logging to JSON output.
type Config struct {
	BindAddress   string
	RedisURL      string
	PublicBaseURL string
	Env           string
	ChannelTTL    time.Duration
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are for local use and should be overridden.
func (c *Config) LoadDefaults() {
	c.BindAddress = ":8080"
	c.RedisURL = "redis://localhost:6379"
	c.PublicBaseURL = "http://localhost:8080"
	c.Env = "development"
	c.ChannelTTL = 15 * time.Minute
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment (including an optional .env file), an optional JSON
// file, and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
