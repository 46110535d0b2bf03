// Package config loads runtime configuration for the signbook terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. SIGNBOOK_DATABASE_DSN / SIGNBOOK_LOG_LEVEL environment variables.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-d string   database DSN (SQLite path or postgres:// URL)
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "database_dsn": "database.db",
//	  "log_level": "warn"
//	}
package config
