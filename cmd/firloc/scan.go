package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"go.lsp.dev/uri"

	"firloc/internal/annotation"
	"firloc/internal/target"
	"firloc/internal/textindex"
)

var scanCmd = &cobra.Command{
	Use:   "scan <file> [file...]",
	Short: "List source-locator annotations in files",
	Long: `Scan files for @[...] source-locator annotations and print every locator
they reference, with relative paths resolved against the scanned file's
directory. Useful for checking generated FIRRTL or Verilog output without
an editor.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	var firstErr error
	for _, path := range args {
		if err := scanFile(cmd.OutOrStdout(), path); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "firloc: %v\n", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func scanFile(out io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	docURI := protocol.DocumentUri(uri.File(absPath))

	text := string(data)
	ix := textindex.New(text)

	for _, span := range annotation.Scan(text) {
		pos := ix.OffsetToPosition(span.FullStart)
		fmt.Fprintf(out, "%s:%d:%d\n", path, pos.Line+1, pos.Character+1)

		for _, token := range annotation.ParseTokens(text, span, ix) {
			resolved := token.Locator.String()
			if targetURI, err := target.ResolveURI(token.Locator.Path, docURI); err == nil {
				if targetPath, err := target.FilePath(targetURI); err == nil {
					locator := token.Locator
					locator.Path = targetPath
					resolved = locator.String()
				}
			}
			fmt.Fprintf(out, "  %s\n", resolved)
		}
	}

	return nil
}
