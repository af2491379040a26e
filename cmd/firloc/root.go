package main

import (
	"os"

	"github.com/spf13/cobra"

	"firloc/internal/config"
	"firloc/internal/logging"
	"firloc/internal/version"
)

var (
	// configFlag is the CLI --config flag value
	configFlag string
)

var rootCmd = &cobra.Command{
	Use:   "firloc",
	Short: "firloc - FIRRTL source-locator language server",
	Long: `firloc makes the @[path:line:col, ...] source-locator annotations emitted
by FIRRTL and Chisel toolchains navigable: Go to Definition jumps from an
annotation back to the original source positions, and hover shows the
referenced source lines with caret markers under the referenced columns.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("firloc version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"Path to config file (default: search $XDG_CONFIG_HOME/firloc and the working directory)")
}

// mustLoadConfig loads the configuration, falling back to defaults when the
// search finds nothing. An explicitly given --config file must load.
func mustLoadConfig(logger *logging.Logger) (*config.Config, error) {
	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		logger.Error("Failed to load config", map[string]interface{}{
			"path":  configFlag,
			"error": err.Error(),
		})
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the structured logger from config. Logs go to stderr by
// default; stdout belongs to the protocol when serving.
func newLogger(cfg *config.Config) *logging.Logger {
	output := os.Stderr
	if cfg.Logging.File != "" {
		if file, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			output = file
		}
	}

	return logging.NewLogger(logging.Config{
		Format: logging.ParseFormat(cfg.Logging.Format),
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Output: output,
	})
}
