// Package server holds the language-server session state and implements
// the definition and hover queries over it.
package server

import (
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"firloc/internal/annotation"
	"firloc/internal/config"
	"firloc/internal/logging"
	"firloc/internal/render"
	"firloc/internal/target"
	"firloc/internal/textindex"
)

// Session owns the open-document table. Notifications (open/change/close)
// take the write lock and replace whole entries; queries take the read
// lock, so a query always sees the most recently applied notification.
type Session struct {
	mu        sync.RWMutex
	documents map[protocol.DocumentUri]string

	logger    *logging.Logger
	languages map[string]string
	id        string
}

// NewSession creates an empty session.
func NewSession(cfg *config.Config, logger *logging.Logger) *Session {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logging.NewLogger(logging.Config{Level: logging.ErrorLevel, Output: io.Discard})
	}
	return &Session{
		documents: make(map[protocol.DocumentUri]string),
		logger:    logger,
		languages: cfg.Languages,
		id:        uuid.NewString(),
	}
}

// ID returns the session's unique identifier, used in log output.
func (s *Session) ID() string {
	return s.id
}

// Open inserts or replaces a document with the text reported by the
// client's open notification.
func (s *Session) Open(docURI protocol.DocumentUri, text string) {
	s.mu.Lock()
	s.documents[docURI] = text
	s.mu.Unlock()

	s.logger.Debug("Document opened", map[string]interface{}{
		"uri":   string(docURI),
		"bytes": len(text),
	})
}

// Replace stores new full content for an already-open document.
func (s *Session) Replace(docURI protocol.DocumentUri, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[docURI] = text
}

// Close removes a document from the open set. Subsequent reads of its URI
// fall back to the filesystem.
func (s *Session) Close(docURI protocol.DocumentUri) {
	s.mu.Lock()
	delete(s.documents, docURI)
	s.mu.Unlock()

	s.logger.Debug("Document closed", map[string]interface{}{
		"uri": string(docURI),
	})
}

// Document returns the text for a URI: the open editor buffer when
// present, otherwise a direct uncached filesystem read.
func (s *Session) Document(docURI protocol.DocumentUri) (string, bool) {
	s.mu.RLock()
	text, open := s.documents[docURI]
	s.mu.RUnlock()
	if open {
		return text, true
	}

	path, err := target.FilePath(docURI)
	if err != nil {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Definition answers a go-to-definition query: every distinct source
// position referenced by the annotation covering the queried position, or
// nil when there is none.
func (s *Session) Definition(docURI protocol.DocumentUri, pos protocol.Position) []protocol.LocationLink {
	tokens, _, _, ok := s.tokensAt(docURI, pos)
	if !ok {
		return nil
	}
	return collectLinks(tokens, docURI)
}

// Hover answers a hover query. Over the annotation's marker region it
// summarizes every token; over a single token it renders that token's
// context and formatted locator; elsewhere it returns nil.
func (s *Session) Hover(docURI protocol.DocumentUri, pos protocol.Position) *protocol.Hover {
	tokens, ix, query, ok := s.tokensAt(docURI, pos)
	if !ok {
		return nil
	}
	reader := sessionLineReader{session: s, source: docURI}

	summaryStart, summaryEnd := annotation.SummaryRegion(query.text, query.span, ix)
	if query.offset >= summaryStart && query.offset < summaryEnd {
		value := render.Summary(tokens, reader, s.languages)
		if value == "" {
			return nil
		}
		anchor := ix.Range(summaryStart, summaryEnd)
		return markdownHover(value, anchor)
	}

	token, ok := annotation.TokenAt(tokens, query.offset)
	if !ok {
		return nil
	}
	return markdownHover(render.TokenHover(token.Locator, reader, s.languages), token.Range)
}

// annotationQuery carries the intermediate state shared by both queries.
type annotationQuery struct {
	text   string
	offset int
	span   annotation.Span
}

func (s *Session) tokensAt(docURI protocol.DocumentUri, pos protocol.Position) ([]annotation.Token, *textindex.Index, annotationQuery, bool) {
	text, ok := s.Document(docURI)
	if !ok {
		return nil, nil, annotationQuery{}, false
	}

	ix := textindex.New(text)
	offset, ok := ix.PositionToOffset(pos)
	if !ok {
		return nil, nil, annotationQuery{}, false
	}

	span, ok := annotation.SpanAt(text, offset)
	if !ok {
		return nil, nil, annotationQuery{}, false
	}

	tokens := annotation.ParseTokens(text, span, ix)
	return tokens, ix, annotationQuery{text: text, offset: offset, span: span}, true
}

type linkKey struct {
	uri  protocol.DocumentUri
	line uint32
	col  uint32
}

// collectLinks builds one-character jump targets for every nonzero
// (line, column) a token references, deduplicated across tokens. A zero
// line means "no location" and skips the whole token; unresolvable paths
// skip the token without failing the query.
func collectLinks(tokens []annotation.Token, source protocol.DocumentUri) []protocol.LocationLink {
	var links []protocol.LocationLink
	seen := make(map[linkKey]struct{})

	for _, token := range tokens {
		if token.Locator.Line == 0 {
			continue
		}

		targetURI, err := target.ResolveURI(token.Locator.Path, source)
		if err != nil {
			continue
		}

		line := token.Locator.Line - 1
		for _, column := range token.Locator.Columns {
			if column == 0 {
				continue
			}
			col := column - 1

			key := linkKey{uri: targetURI, line: line, col: col}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			targetRange := protocol.Range{
				Start: protocol.Position{Line: line, Character: col},
				End:   protocol.Position{Line: line, Character: col + 1},
			}
			links = append(links, protocol.LocationLink{
				TargetURI:            targetURI,
				TargetRange:          targetRange,
				TargetSelectionRange: targetRange,
			})
		}
	}

	return links
}

// sessionLineReader reads locator target lines through the session, so
// open buffers win over on-disk content.
type sessionLineReader struct {
	session *Session
	source  protocol.DocumentUri
}

func (r sessionLineReader) LocatorLine(locator annotation.Locator) (string, bool) {
	targetURI, err := target.ResolveURI(locator.Path, r.source)
	if err != nil {
		return "", false
	}
	text, ok := r.session.Document(targetURI)
	if !ok {
		return "", false
	}
	return render.LineAt(text, locator.Line)
}

func markdownHover(value string, anchor protocol.Range) *protocol.Hover {
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: value,
		},
		Range: &anchor,
	}
}
