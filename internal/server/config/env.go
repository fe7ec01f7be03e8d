package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "LIFEMGMT_"

// parseEnv loads dotenv into the process environment (existing variables
// win) and overlays cfg with LIFEMGMT_* variables. Durations use Go syntax,
// e.g. LIFEMGMT_TOKEN_VALIDITY=12h.
func parseEnv(cfg *Config, dotenv string) error {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", dotenv, err)
		}
	}

	for name, dst := range map[string]*string{
		"ENDPOINT_ADDR": &cfg.EndpointAddr,
		"DATABASE_DSN":  &cfg.DatabaseDSN,
		"SECRET_KEY":    &cfg.SecretKey,
		"LOG_FORMAT":    &cfg.LogFormat,
	} {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}

	for name, dst := range map[string]*time.Duration{
		"TOKEN_VALIDITY":       &cfg.TokenValidityDuration,
		"RESET_TOKEN_VALIDITY": &cfg.ResetTokenValidityDuration,
		"SHUTDOWN_TIMEOUT":     &cfg.ShutdownTimeout,
	} {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = d
	}

	return nil
}
