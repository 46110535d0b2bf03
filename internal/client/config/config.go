package config

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/signbook/internal/common"
	"github.com/dmitrijs2005/signbook/internal/flagx"
)

// Config holds runtime settings for the terminal client. The client opens
// the store directly, so it only needs to know where the store is.
type Config struct {
	DatabaseDSN string `env:"DATABASE_DSN" json:"database_dsn"`
	LogLevel    string `env:"LOG_LEVEL" json:"log_level"`
}

// LoadDefaults populates c with defaults. The client is interactive, so
// only warnings and errors are logged by default.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = common.DefaultDatabaseFile
	c.LogLevel = "warn"
}

// LoadConfig applies defaults, then the JSON file, environment and flags.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: common.EnvPrefix}); err != nil {
		panic(err)
	}
	parseFlags(cfg, args)
	return cfg
}

func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFile(args)
	if path == "" {
		return
	}

	b, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var c Config
	if err := json.Unmarshal(b, &c); err != nil {
		panic(err)
	}

	if c.DatabaseDSN != "" {
		cfg.DatabaseDSN = c.DatabaseDSN
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
}

func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-d", "-l"})

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
