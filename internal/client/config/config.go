package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the lifemgmt CLI.
type Config struct {
	APIBaseURL           string
	RequestTimeout       time.Duration
	SessionCheckInterval time.Duration
	DatabasePath         string
	LogFormat            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000/api"
	c.RequestTimeout = 10 * time.Second
	c.SessionCheckInterval = time.Minute
	c.DatabasePath = "lifemgmt.db"
	c.LogFormat = "text"
}

// LoadConfig builds a Config from the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load applies defaults, then the JSON file named in args (if any), then the
// flags in args. Later sources take precedence over earlier ones.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
