package app

import (
	"context"
	"fmt"

	"survey-builder-service/internal/builder"
	"survey-builder-service/internal/domain"
)

// SessionRepository abstracts where editing sessions live (in-memory, Redis-marked, etc).
type SessionRepository interface {
	GetOrCreate(sessionID string, create func() *Session) *Session
	Get(sessionID string) (*Session, bool)
	DeleteIfIdle(sessionID string)
}

// TemplateRepository loads seed surveys (from cache/backing store).
type TemplateRepository interface {
	GetTemplate(ctx context.Context, templateID string) (domain.Template, error)
}

// EditorService contains the survey editing use cases.
type EditorService struct {
	sessions  SessionRepository
	templates TemplateRepository
	ids       builder.IDGenerator
	opts      SessionOptions
}

// NewEditorService wires the service. templates may be nil when no seed source is configured.
func NewEditorService(sessions SessionRepository, templates TemplateRepository, ids builder.IDGenerator, opts SessionOptions) *EditorService {
	return &EditorService{sessions: sessions, templates: templates, ids: ids, opts: opts}
}

// Open returns the session, creating it when needed. A new session is seeded
// from templateID when one is given; an existing session ignores it.
func (s *EditorService) Open(ctx context.Context, sessionID, templateID string) (Snapshot, error) {
	if session, ok := s.sessions.Get(sessionID); ok {
		return session.Snapshot(), nil
	}

	var seed []domain.Question
	if templateID != "" {
		if s.templates == nil {
			return Snapshot{}, domain.ErrTemplateNotFound
		}
		tmpl, err := s.templates.GetTemplate(ctx, templateID)
		if err != nil {
			return Snapshot{}, err
		}
		if err := builder.CheckQuestions(tmpl.Questions); err != nil {
			return Snapshot{}, fmt.Errorf("template %s: %w", templateID, err)
		}
		seed = tmpl.Questions
	}

	session := s.sessions.GetOrCreate(sessionID, func() *Session {
		return NewSession(sessionID, s.ids, seed, s.opts)
	})
	return session.Snapshot(), nil
}

// Dispatch applies an action to the session's question list.
func (s *EditorService) Dispatch(_ context.Context, sessionID string, action builder.Action) (Snapshot, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return Snapshot{}, domain.ErrSessionNotFound
	}
	return session.Dispatch(action)
}

// Select changes the selected question.
func (s *EditorService) Select(_ context.Context, sessionID, questionID string) (Snapshot, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return Snapshot{}, domain.ErrSessionNotFound
	}
	return session.Select(questionID), nil
}

// Respond records a preview answer.
func (s *EditorService) Respond(_ context.Context, sessionID, questionID string, resp domain.Response) (Snapshot, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return Snapshot{}, domain.ErrSessionNotFound
	}
	return session.Respond(questionID, resp)
}

// ClearResponse removes a preview answer.
func (s *EditorService) ClearResponse(_ context.Context, sessionID, questionID string) (Snapshot, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return Snapshot{}, domain.ErrSessionNotFound
	}
	return session.ClearResponse(questionID), nil
}

// DismissNotice hides the current banner.
func (s *EditorService) DismissNotice(_ context.Context, sessionID string) (Snapshot, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return Snapshot{}, domain.ErrSessionNotFound
	}
	return session.DismissNotice(), nil
}

// Snapshot returns the session state.
func (s *EditorService) Snapshot(_ context.Context, sessionID string) (Snapshot, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return Snapshot{}, domain.ErrSessionNotFound
	}
	return session.Snapshot(), nil
}

// Subscribe returns a channel that receives a snapshot after every change.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *EditorService) Subscribe(_ context.Context, sessionID string) (<-chan Snapshot, func(), error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, nil, domain.ErrSessionNotFound
	}
	ch, cancel := session.subscribe()
	return ch, cancel, nil
}

// Leave drops the session once nobody is subscribed any more.
func (s *EditorService) Leave(_ context.Context, sessionID string) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return
	}
	if session.IsIdle() {
		s.sessions.DeleteIfIdle(sessionID)
	}
}
