package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/lifemgmt/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-a string   HTTP bind address (e.g. ":3000")
//	-d string   PostgreSQL DSN
//	-s string   token signing secret
//	-t int      session token validity, minutes
//	-r int      reset token validity, minutes
//	-l string   log format: json or text
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.EndpointAddr, "a", cfg.EndpointAddr, "address and port to run server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(cfg.TokenValidityDuration.Minutes()), "session token validity (in minutes)")
	resetValidity := fs.Int("r", int(cfg.ResetTokenValidityDuration.Minutes()), "reset token validity (in minutes)")
	fs.StringVar(&cfg.LogFormat, "l", cfg.LogFormat, "log format (json|text)")

	if err := flagx.Parse(fs, args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
		case "r":
			cfg.ResetTokenValidityDuration = time.Duration(*resetValidity) * time.Minute
		}
	})
	return nil
}
