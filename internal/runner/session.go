package runner

import (
	"fmt"
	"log/slog"
	"strings"

	"docreview/internal/document"
	"docreview/internal/guideline"
)

// DocumentLoader reads article text from a file path.
type DocumentLoader func(path string) (string, error)

// SessionOptions configures a Session. Zero values use the package loaders.
type SessionOptions struct {
	Logger         *slog.Logger
	LoadDocument   DocumentLoader
	LoadGuidelines guideline.Loader
}

// Session holds the loaded article and guideline selection between reviews.
// It is not safe for concurrent use.
type Session struct {
	logger       *slog.Logger
	loadDocument DocumentLoader
	guidelines   *guideline.Store

	article      string
	documentPath string
}

// NewSession constructs an empty session.
func NewSession(opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	loadDocument := opts.LoadDocument
	if loadDocument == nil {
		loadDocument = document.Load
	}
	return &Session{
		logger:       logger,
		loadDocument: loadDocument,
		guidelines:   guideline.NewStore(opts.LoadGuidelines),
	}
}

// LoadDocument replaces the article with the text of path.
// On error the previous article is kept.
func (s *Session) LoadDocument(path string) error {
	text, err := s.loadDocument(path)
	if err != nil {
		s.logger.Warn("document not loaded", "path", path, "error", err)
		return fmt.Errorf("load document %s: %w", path, err)
	}
	s.article = text
	s.documentPath = path
	s.logger.Debug("document loaded", "path", path, "chars", len(text))
	return nil
}

// SetArticle replaces the article text directly.
func (s *Session) SetArticle(text string) {
	s.article = text
	s.documentPath = ""
}

// Article returns the current article text.
func (s *Session) Article() string {
	return s.article
}

// DocumentPath returns the path the article was loaded from, if any.
func (s *Session) DocumentPath() string {
	return s.documentPath
}

// LoadGuidelines replaces the guideline set with the contents of path.
// A failed load is logged and leaves the previous set untouched.
func (s *Session) LoadGuidelines(path string) error {
	if err := s.guidelines.Reload(path); err != nil {
		s.logger.Warn("guidelines not loaded; keeping previous set",
			"path", path,
			"error", err,
			"kept", s.guidelines.Set().Len(),
		)
		return err
	}
	s.logger.Debug("guidelines loaded", "path", path, "count", s.guidelines.Set().Len())
	return nil
}

// Guidelines returns the current guideline set with its selection state.
func (s *Session) Guidelines() *guideline.Set {
	return s.guidelines.Set()
}

// GuidelinesPath returns the path of the loaded guideline sheet.
func (s *Session) GuidelinesPath() string {
	return s.guidelines.Source()
}

// CheckInputs rejects a review without article text or selected guidelines.
func (s *Session) CheckInputs() error {
	if strings.TrimSpace(s.article) == "" {
		return ErrMissingArticle
	}
	if len(s.guidelines.Set().Selected()) == 0 {
		return ErrNoGuidelines
	}
	return nil
}
