package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/lifemgmt/internal/flagx"
	"github.com/dmitrijs2005/lifemgmt/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Pointer fields tell "absent" from "zero", so a partial file only
// overrides what it names.
type JsonConfig struct {
	APIBaseURL           *string         `json:"api_base_url"`
	RequestTimeout       *timex.Duration `json:"request_timeout"`
	SessionCheckInterval *timex.Duration `json:"session_check_interval"`
	DatabasePath         *string         `json:"database_path"`
	LogFormat            *string         `json:"log_format"`
}

// parseJson overlays cfg with the file named by -c/-config in args.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SessionCheckInterval != nil {
		cfg.SessionCheckInterval = jc.SessionCheckInterval.Duration
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.LogFormat != nil {
		cfg.LogFormat = *jc.LogFormat
	}
	return nil
}
