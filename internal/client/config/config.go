// Package config handles configuration for the CLI client.
package config

import (
	"flag"
	"os"

	"github.com/antonk9218/authd/internal/flagx"
)

// Config holds runtime settings for the authd CLI client.
type Config struct {
	ServerAddr string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "http://localhost:3000"
}

// LoadConfig builds a Config by applying defaults and then overlaying
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)
	return cfg
}

// parseFlags populates Config from command-line flags.
//
// Supported flags:
//
//	-a string   server base URL (e.g., "http://localhost:3000")
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.StringVar(&config.ServerAddr, "a", config.ServerAddr, "server base URL")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
