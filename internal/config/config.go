// Package config loads the firloc configuration.
package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete firloc configuration
type Config struct {
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// Languages adds extension-to-markdown-language overrides for hover
	// code fences, keyed by lower-cased extension including the dot
	// (e.g. ".vhd": "vhdl"). Built-in mappings take effect when an
	// extension is not listed here.
	Languages map[string]string `json:"languages" mapstructure:"languages"`
}

// LoggingConfig contains structured-logger configuration
type LoggingConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
	File   string `json:"file" mapstructure:"file"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "human",
		},
		Languages: map[string]string{},
	}
}

// LoadConfig loads configuration from the given file path. With an empty
// path it searches $XDG_CONFIG_HOME/firloc and the working directory for
// firloc.yaml; a missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "human")

	// Environment overrides: FIRLOC_LOGGING_LEVEL etc.
	v.SetEnvPrefix("FIRLOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Configure viper
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("firloc")
		v.SetConfigType("yaml")
		if configDir, err := userConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(configDir, "firloc"))
		}
		v.AddConfigPath(".")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && path == "" {
			// No config file found during search: use defaults.
		} else {
			return nil, err
		}
	}

	// Unmarshal into config struct
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.Languages == nil {
		cfg.Languages = map[string]string{}
	}

	return cfg, nil
}
