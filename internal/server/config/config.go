// Package config handles configuration for the web server, including
// defaults, environment variables, a JSON overlay and command-line flags.
package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/signbook/internal/common"
)

// Config holds runtime settings for the signbook web server.
//
// Fields:
//   - HTTPAddr: bind address of the web UI.
//   - DatabaseDSN: SQLite file path, or a postgres:// URL.
//   - MaxUploadSize: upper bound for a multipart form, in bytes.
//   - RateLimit: write requests allowed per client IP per minute; 0 disables limiting.
//   - ReadTimeout / WriteTimeout / ShutdownTimeout: http.Server timeouts and the
//     grace period for in-flight requests on shutdown.
//   - LogLevel / LogFormat: see logging.New.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR"`
	DatabaseDSN     string        `env:"DATABASE_DSN"`
	MaxUploadSize   int64         `env:"MAX_UPLOAD_SIZE"`
	RateLimit       int           `env:"RATE_LIMIT"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
	LogLevel        string        `env:"LOG_LEVEL"`
	LogFormat       string        `env:"LOG_FORMAT"`
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8501"
	c.DatabaseDSN = common.DefaultDatabaseFile
	c.MaxUploadSize = 5 << 20
	c.RateLimit = 30
	c.ReadTimeout = 10 * time.Second
	c.WriteTimeout = 10 * time.Second
	c.ShutdownTimeout = 5 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "json"
}

// LoadConfig builds a Config from defaults, then the JSON file named by -c,
// then SIGNBOOK_* environment variables (a .env file is read first if
// present) and finally command-line flags. Later sources win.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}
