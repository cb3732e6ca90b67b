package config

import "time"

// Config holds runtime settings for the lynkc CLI.
//
// Fields:
//   - ServerURL: base URL of the backend REST endpoint.
//   - PollInterval: how often the client re-fetches the active channel.
//   - DownloadDir: subdirectory name for saved attachments, created under
//     the user's home directory.
//
// Units: PollInterval is a time.Duration (e.g., 2*time.Second).
type Config struct {
	ServerURL    string
	DownloadDir  string
	PollInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.DownloadDir = "lynkc-downloads"
	c.PollInterval = 2 * time.Second
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
