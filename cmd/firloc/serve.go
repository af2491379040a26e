package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"firloc/internal/logging"
	"firloc/internal/server"
	"firloc/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the language server on stdio",
	Long: `Start the language server.

The server speaks the Language Server Protocol over stdio and advertises
whole-document synchronization, Go to Definition, and hover. Definition
queries on a @[...] annotation return one jump target per referenced
source position; hover renders the referenced source lines with caret
markers.

This command is typically invoked by an editor's language-server client
and not directly by users.`,
	RunE: runServe,
}

var (
	serveStdio   bool
	serveDebug   bool
	serveLogFile string
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveStdio, "stdio", true, "Use stdio for communication (default)")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable protocol-level debug logging")
	serveCmd.Flags().StringVar(&serveLogFile, "log-file", "", "Write transport logs to this file instead of stderr")
}

func runServe(cmd *cobra.Command, args []string) error {
	bootstrapLogger := logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.InfoLevel,
		Output: os.Stderr,
	})

	cfg, err := mustLoadConfig(bootstrapLogger)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	// Transport-layer logging goes through commonlog (glsp's backend);
	// it must never touch stdout.
	verbosity := 1
	if serveDebug {
		verbosity = 2
	}
	var logPath *string
	if serveLogFile != "" {
		logPath = &serveLogFile
	}
	commonlog.Configure(verbosity, logPath)

	logger.Info("Starting language server", map[string]interface{}{
		"version": version.Version,
	})

	srv := server.New(cfg, logger, serveDebug)
	if err := srv.RunStdio(); err != nil {
		logger.Error("Language server error", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	return nil
}
