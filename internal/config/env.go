package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvDatabaseDSN      = "CLIENTDB_DATABASE_DSN"
	EnvDatabasePassword = "CLIENTDB_DATABASE_PASSWORD"
	EnvPromptPassword   = "CLIENTDB_PROMPT_PASSWORD"
	EnvOutputFormat     = "CLIENTDB_OUTPUT"
	EnvLogLevel         = "CLIENTDB_LOG_LEVEL"
)

// parseEnv overlays CLIENTDB_* variables onto config. A variable set in the
// process environment beats the same key in a dotenv file; missing files are
// skipped. Dotenv files are read, never exported into the environment.
func parseEnv(config *Config, envFiles ...string) error {
	fileValues := make(map[string]string)
	for _, name := range envFiles {
		m, err := godotenv.Read(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("read env file %s: %w", name, err)
		}
		for k, v := range m {
			fileValues[k] = v
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileValues[key]
		return v, ok
	}

	if v, ok := lookup(EnvDatabaseDSN); ok {
		setString(&config.DatabaseDSN, v)
	}
	if v, ok := lookup(EnvDatabasePassword); ok {
		setString(&config.DatabasePassword, v)
	}
	if v, ok := lookup(EnvOutputFormat); ok {
		setString(&config.OutputFormat, v)
	}
	if v, ok := lookup(EnvLogLevel); ok {
		setString(&config.LogLevel, v)
	}
	if v, ok := lookup(EnvPromptPassword); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPromptPassword, err)
		}
		config.PromptPassword = b
	}
	return nil
}
