package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/clientdb/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   PostgreSQL DSN
//	-W          prompt for the database password
//	-o string   output format: text, json or yaml
//	-l string   log level: debug, info, warn or error
//
// Arguments belonging to other flags (such as -c) are filtered out first.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args,
		flagx.Value("-d"), flagx.Bool("-W"), flagx.Value("-o"), flagx.Value("-l"))

	fs := flag.NewFlagSet("clientdb", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.BoolVar(&config.PromptPassword, "W", config.PromptPassword, "prompt for the database password")
	fs.StringVar(&config.OutputFormat, "o", config.OutputFormat, "output format (text, json, yaml)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level (debug, info, warn, error)")

	return fs.Parse(args)
}
