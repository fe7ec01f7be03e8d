// Package config loads runtime configuration for the lifemgmt client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the Credential Store API
//	-t int      per-request timeout (seconds)
//	-i int      session check interval (seconds, 0 disables the check)
//	-d string   path of the local SQLite database
//	-l string   log format: json or text
//
// # JSON schema
//
// Durations use timex.Duration, so values are either strings like "10s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:3000/api",
//	  "request_timeout": "10s",
//	  "session_check_interval": "1m",
//	  "database_path": "lifemgmt.db",
//	  "log_format": "text"
//	}
package config
