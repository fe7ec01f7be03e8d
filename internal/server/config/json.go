package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/lifemgmt/internal/flagx"
	"github.com/dmitrijs2005/lifemgmt/internal/timex"
)

// JsonConfig is a DTO used only for reading the JSON file. Absent keys
// leave the current value untouched.
type JsonConfig struct {
	EndpointAddr               *string         `json:"endpoint_addr"`
	DatabaseDSN                *string         `json:"database_dsn"`
	SecretKey                  *string         `json:"secret_key"`
	TokenValidityDuration      *timex.Duration `json:"token_validity_duration"`
	ResetTokenValidityDuration *timex.Duration `json:"reset_token_validity_duration"`
	ShutdownTimeout            *timex.Duration `json:"shutdown_timeout"`
	LogFormat                  *string         `json:"log_format"`
}

func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var c JsonConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.EndpointAddr, c.EndpointAddr)
	setString(&cfg.DatabaseDSN, c.DatabaseDSN)
	setString(&cfg.SecretKey, c.SecretKey)
	setString(&cfg.LogFormat, c.LogFormat)
	if c.TokenValidityDuration != nil {
		cfg.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.ResetTokenValidityDuration != nil {
		cfg.ResetTokenValidityDuration = c.ResetTokenValidityDuration.Duration
	}
	if c.ShutdownTimeout != nil {
		cfg.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
