package config

import (
	"flag"

	"github.com/dmitrijs2005/signbook/internal/flagx"
)

// parseFlags overlays Config with command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":8501")
//	-d string   database DSN: SQLite path or postgres:// URL
//	-m int      max upload size in bytes
//	-r int      write requests per minute per IP (0 disables)
//	-l string   log level: debug, info, warn, error
//	-f string   log format: json or text
//
// Only these flags are taken from args (see flagx.FilterArgs), so -c and
// anything else on the command line is ignored here.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-m", "-r", "-l", "-f"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run the web UI")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.Int64Var(&config.MaxUploadSize, "m", config.MaxUploadSize, "max upload size (bytes)")
	fs.IntVar(&config.RateLimit, "r", config.RateLimit, "write requests per minute per client")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format (json|text)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
