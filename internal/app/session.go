// Package app drives the interactive viewer: it owns the current document
// and result, and replays the drawing in plot order.
package app

import (
	"context"
	"log/slog"
	"maps"
	"sync"

	"penplot/internal/core"
	"penplot/internal/ui"
)

// Session holds the viewer state that does not depend on a window.
type Session struct {
	Playback *core.Playback
	Toggles  *ui.LayerToggles

	logger *slog.Logger
	doc    core.Document
	res    core.Result

	mu      sync.Mutex
	pending *core.Document
}

// NewSession generates doc once. A nil logger discards.
func NewSession(ctx context.Context, doc core.Document, playback *core.Playback, toggles *ui.LayerToggles, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if toggles == nil {
		toggles = &ui.LayerToggles{}
	}
	s := &Session{Playback: playback, Toggles: toggles, logger: logger}
	if err := s.apply(ctx, doc); err != nil {
		return nil, err
	}
	return s, nil
}

// Document is the document behind the current result, with its seed
// pinned.
func (s *Session) Document() core.Document { return s.doc }

// Result is the current drawing.
func (s *Session) Result() core.Result { return s.res }

// Sketch builds a fresh sketch for the current document.
func (s *Session) Sketch() (core.Sketch, error) {
	return core.New(s.doc.Sketch, s.doc.Params)
}

// apply generates doc and, on success, makes it current and restarts
// playback. On failure the previous drawing stays.
func (s *Session) apply(ctx context.Context, doc core.Document) error {
	res, err := core.Run(ctx, doc, s.logger)
	if err != nil {
		return err
	}
	doc.Seed = res.Seed.String()
	s.doc, s.res = doc, res
	s.Toggles.Reset(len(res.Layers))
	if s.Playback != nil {
		s.Playback.Restart(len(res.Paths()))
	}
	return nil
}

// Regenerate replays the current document with the same seed.
func (s *Session) Regenerate(ctx context.Context) error {
	return s.apply(ctx, s.doc)
}

// Reseed generates the current document with a new random seed.
func (s *Session) Reseed(ctx context.Context) error {
	doc := s.doc
	doc.Seed = ""
	return s.apply(ctx, doc)
}

// SetParam regenerates with one parameter changed. An invalid value
// leaves the drawing as it was.
func (s *Session) SetParam(ctx context.Context, key, value string) error {
	doc := s.doc
	doc.Params = maps.Clone(s.doc.Params)
	if err := doc.Set(key + "=" + value); err != nil {
		return err
	}
	if err := s.apply(ctx, doc); err != nil {
		s.logger.Warn("parameter rejected", slog.String("key", key), slog.String("value", value), slog.Any("err", err))
		return err
	}
	return nil
}

// Queue hands over a document from another goroutine, typically a file
// watcher. It is picked up by the next ApplyPending.
func (s *Session) Queue(doc core.Document) {
	s.mu.Lock()
	s.pending = &doc
	s.mu.Unlock()
}

// ApplyPending generates the most recently queued document, if any. It
// reports whether the drawing changed.
func (s *Session) ApplyPending(ctx context.Context) (bool, error) {
	s.mu.Lock()
	doc := s.pending
	s.pending = nil
	s.mu.Unlock()
	if doc == nil {
		return false, nil
	}
	if err := s.apply(ctx, *doc); err != nil {
		return false, err
	}
	return true, nil
}
