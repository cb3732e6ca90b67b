package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/lynkc/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-r string   Redis connection URL
//	-b string   public base URL for shareable links
//	-t int      channel TTL, seconds
//	-e string   environment name ("production" enables JSON logging)
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - The TTL flag is accepted as an integer in seconds and then converted
//     to a time.Duration.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-r", "-b", "-t", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.BindAddress, "a", config.BindAddress, "address and port to run server")
	fs.StringVar(&config.RedisURL, "r", config.RedisURL, "redis connection URL")
	fs.StringVar(&config.PublicBaseURL, "b", config.PublicBaseURL, "public base URL for links")
	fs.StringVar(&config.Env, "e", config.Env, "environment name")

	channelTTL := fs.Int("t", int(config.ChannelTTL.Seconds()), "channel TTL (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ChannelTTL = time.Duration(*channelTTL) * time.Second
}
