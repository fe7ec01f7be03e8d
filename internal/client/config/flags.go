package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/lifemgmt/internal/flagx"
)

// parseFlags overlays cfg with the flags found in args. Flags belonging to
// other loaders (such as -c) are ignored.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the Credential Store API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	interval := fs.Int("i", int(cfg.SessionCheckInterval.Seconds()), "session check interval (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database")
	fs.StringVar(&cfg.LogFormat, "l", cfg.LogFormat, "log format (json|text)")

	if err := flagx.Parse(fs, args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// Durations are only overridden when given.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		case "i":
			cfg.SessionCheckInterval = time.Duration(*interval) * time.Second
		}
	})
	return nil
}
