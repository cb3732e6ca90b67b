package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/lynkc/internal/flagx"
	"github.com/dmitrijs2005/lynkc/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the TTL either as a
// string like "15m" or as integer nanoseconds.
type JsonConfig struct {
	BindAddress   string         `json:"bind_address"`
	RedisURL      string         `json:"redis_url"`
	PublicBaseURL string         `json:"public_base_url"`
	Env           string         `json:"env"`
	ChannelTTL    timex.Duration `json:"channel_ttl"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies known fields into the provided Config.
//   - Panics on read or unmarshal errors (caller should recover if desired).
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BindAddress != "" {
		cfg.BindAddress = jc.BindAddress
	}
	if jc.RedisURL != "" {
		cfg.RedisURL = jc.RedisURL
	}
	if jc.PublicBaseURL != "" {
		cfg.PublicBaseURL = jc.PublicBaseURL
	}
	if jc.Env != "" {
		cfg.Env = jc.Env
	}
	if jc.ChannelTTL.Duration > 0 {
		cfg.ChannelTTL = time.Duration(jc.ChannelTTL.Duration)
	}
}
