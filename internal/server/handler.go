package server

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"firloc/internal/config"
	"firloc/internal/logging"
	"firloc/internal/version"
)

const serverName = "firrtl-source-locator"

// Server wires the session to the LSP transport. It advertises
// whole-document synchronization plus definition and hover support.
type Server struct {
	session *Session
	logger  *logging.Logger
	handler protocol.Handler
	debug   bool
}

// New creates a server around a fresh session.
func New(cfg *config.Config, logger *logging.Logger, debug bool) *Server {
	session := NewSession(cfg, logger)
	s := &Server{
		session: session,
		logger:  session.logger,
		debug:   debug,
	}

	s.handler = protocol.Handler{
		Initialize:             s.initialize,
		Initialized:            s.initialized,
		Shutdown:               s.shutdown,
		SetTrace:               s.setTrace,
		TextDocumentDidOpen:    s.didOpen,
		TextDocumentDidChange:  s.didChange,
		TextDocumentDidClose:   s.didClose,
		TextDocumentDefinition: s.definition,
		TextDocumentHover:      s.hover,
	}

	return s
}

// RunStdio serves LSP over stdin/stdout until the client disconnects.
func (s *Server) RunStdio() error {
	s.logger.Info("Language server listening on stdio", map[string]interface{}{
		"session": s.session.ID(),
		"version": version.Version,
	})
	return glspserver.NewServer(&s.handler, serverName, s.debug).RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (interface{}, error) {
	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = protocol.TextDocumentSyncKindFull

	serverVersion := version.Version
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &serverVersion,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ctx.Notify(protocol.ServerWindowLogMessage, &protocol.LogMessageParams{
		Type:    protocol.MessageTypeInfo,
		Message: serverName + " ready: Go to Definition for @[...] is enabled",
	})
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	s.logger.Info("Shutdown requested", map[string]interface{}{
		"session": s.session.ID(),
	})
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

func (s *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.session.Open(params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	text, ok := lastFullChange(params.ContentChanges)
	if !ok {
		return nil
	}
	s.session.Replace(params.TextDocument.URI, text)
	return nil
}

func (s *Server) didClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.session.Close(params.TextDocument.URI)
	return nil
}

func (s *Server) definition(ctx *glsp.Context, params *protocol.DefinitionParams) (interface{}, error) {
	links := s.session.Definition(params.TextDocument.URI, params.Position)
	if len(links) == 0 {
		return nil, nil
	}
	return links, nil
}

func (s *Server) hover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	return s.session.Hover(params.TextDocument.URI, params.Position), nil
}

// lastFullChange extracts the text of the last whole-document replacement
// in a change batch. The server only advertises full sync, so ranged
// change events carry no usable content and are ignored.
func lastFullChange(changes []interface{}) (string, bool) {
	text := ""
	found := false
	for _, raw := range changes {
		switch change := raw.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = change.Text
			found = true
		case protocol.TextDocumentContentChangeEvent:
			if change.Range == nil {
				text = change.Text
				found = true
			}
		}
	}
	return text, found
}
