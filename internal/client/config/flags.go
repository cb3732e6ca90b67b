package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/lynkc/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend server (default from Config)
//	-p int      channel poll interval in seconds (default from Config)
//	-d string   download directory name (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-p", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL to access server")
	fs.StringVar(&cfg.DownloadDir, "d", cfg.DownloadDir, "download directory name")
	pollInterval := fs.Int("p", int(cfg.PollInterval.Seconds()), "channel poll interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.PollInterval = time.Duration(*pollInterval) * time.Second
}
