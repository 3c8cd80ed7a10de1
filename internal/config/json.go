package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/clientdb/internal/flagx"
)

// JsonConfig is the on-disk shape of the configuration file. Pointer fields
// tell an absent key from an explicit zero value.
type JsonConfig struct {
	DatabaseDSN      string `json:"database_dsn"`
	DatabasePassword string `json:"database_password"`
	PromptPassword   *bool  `json:"prompt_password"`
	OutputFormat     string `json:"output_format"`
	LogLevel         string `json:"log_level"`
}

// parseJson overlays the JSON file given with -c or -config onto config.
// Without such a flag nothing is loaded. Empty strings in the file keep the
// current values.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.DatabasePassword, c.DatabasePassword)
	setString(&config.OutputFormat, c.OutputFormat)
	setString(&config.LogLevel, c.LogLevel)
	if c.PromptPassword != nil {
		config.PromptPassword = *c.PromptPassword
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
