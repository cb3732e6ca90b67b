// Package config loads runtime configuration for the lynkc CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST endpoint
//	-p int      channel poll interval (seconds)
//	-d string   download directory name
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "2s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://localhost:8080",
//	  "poll_interval": "2s",
//	  "download_dir": "lynkc-downloads"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
