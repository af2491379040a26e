// Package target resolves locator paths to addressable file URIs.
package target

import (
	"fmt"
	"path/filepath"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"go.lsp.dev/uri"
)

// FilePath extracts the filesystem path from a file-scheme document URI.
// Non-file URIs (untitled buffers, virtual documents) fail: they have no
// directory to resolve relative locator paths against.
func FilePath(docURI protocol.DocumentUri) (_ string, err error) {
	// uri.Filename panics on URIs it cannot parse; a malformed URI from
	// the client must degrade to a skipped token, not kill the server.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("invalid document URI %q: %v", docURI, r)
		}
	}()

	if !strings.HasPrefix(string(docURI), "file://") {
		return "", fmt.Errorf("not a file URI: %q", docURI)
	}
	return uri.URI(docURI).Filename(), nil
}

// ResolveURI turns a locator path into a file URI. Absolute paths are used
// directly; relative paths resolve against the parent directory of the
// document hosting the annotation.
func ResolveURI(locatorPath string, source protocol.DocumentUri) (protocol.DocumentUri, error) {
	if locatorPath == "" {
		return "", fmt.Errorf("empty locator path")
	}

	resolved := locatorPath
	if !filepath.IsAbs(locatorPath) {
		sourcePath, err := FilePath(source)
		if err != nil {
			return "", err
		}
		resolved = filepath.Join(filepath.Dir(sourcePath), locatorPath)
	}

	return protocol.DocumentUri(uri.File(resolved)), nil
}
