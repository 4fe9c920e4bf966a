// Package config loads runtime configuration for the task tracker CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path to the local sqlite database file
//	-s int      session validity window (hours)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the session window, so values can
// be either strings like "24h" or integer nanoseconds:
//
//	{
//	  "database_dsn": "tasktracker.db",
//	  "session_validity_duration": "24h"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
