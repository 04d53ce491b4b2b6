// Package service implements the conversation orchestrator: it wires
// inbound events to the assessment flow, the recommendation engine, the
// step planner, and the intent router, and appends every turn to the
// session's history.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/melisasvr/Agile-Project-Consultant/internal/config"
	"github.com/melisasvr/Agile-Project-Consultant/internal/domain"
	"github.com/melisasvr/Agile-Project-Consultant/internal/intent"
	"github.com/melisasvr/Agile-Project-Consultant/internal/knowledge"
	"github.com/melisasvr/Agile-Project-Consultant/internal/recommend"
	"github.com/melisasvr/Agile-Project-Consultant/internal/repository"
)

type eventHandler func(ctx context.Context, ev *domain.Event) ([]domain.Reply, error)

// Service is the conversation orchestrator.
type Service struct {
	store  store.Store
	engine *recommend.Engine
	router *intent.Router
	config *config.Config

	// Explicit dispatch tables: event kind and action name to handler,
	// invoked synchronously. No implicit registration.
	events  map[domain.EventKind]eventHandler
	actions map[domain.ActionName]eventHandler
}

// New creates the service and registers the dispatch tables.
func New(st store.Store, engine *recommend.Engine, router *intent.Router, cfg *config.Config) *Service {
	s := &Service{
		store:  st,
		engine: engine,
		router: router,
		config: cfg,
	}
	s.events = map[domain.EventKind]eventHandler{
		domain.EventWelcome: s.handleWelcome,
		domain.EventAction:  s.handleAction,
		domain.EventMessage: s.handleMessage,
	}
	s.actions = map[domain.ActionName]eventHandler{
		domain.ActionStartAssessment:     s.startAssessment,
		domain.ActionSubmitAssessment:    s.submitAssessment,
		domain.ActionShowSteps:           s.showImplementationSteps,
		domain.ActionAskQuestion:         s.askQuestion,
		domain.ActionContinueChat:        s.continueChat,
		domain.ActionMethodologySpecific: s.methodologySpecific,
		domain.ActionGeneralPractices:    s.generalPractices,
	}
	return s
}

// HandleEvent dispatches one inbound event to its handler. A missing
// session is treated as a first interaction and lazily initialized, never
// surfaced as an error.
func (s *Service) HandleEvent(ctx context.Context, ev *domain.Event) ([]domain.Reply, error) {
	if ev.SessionID == "" {
		return nil, fmt.Errorf("session_id is required")
	}
	if _, err := s.store.GetOrCreateSession(ctx, ev.SessionID); err != nil {
		return nil, fmt.Errorf("failed to get/create session: %w", err)
	}

	handler, ok := s.events[ev.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown event kind %q", ev.Kind)
	}
	return handler(ctx, ev)
}

func (s *Service) handleAction(ctx context.Context, ev *domain.Event) ([]domain.Reply, error) {
	handler, ok := s.actions[ev.Action]
	if !ok {
		// Recoverable: guide the user instead of failing.
		text := fmt.Sprintf("I don't recognize the action %q. You can start an assessment or just ask me a question.", ev.Action)
		if err := s.appendTurn(ctx, ev.SessionID, domain.RoleAgent, text); err != nil {
			return nil, err
		}
		return []domain.Reply{domain.TextReply(text)}, nil
	}
	return handler(ctx, ev)
}

// Questions returns the ordered assessment question catalog.
func (s *Service) Questions() []domain.Question {
	return knowledge.Questions()
}

// History returns a session's conversation history, oldest first.
func (s *Service) History(ctx context.Context, sessionID string, limit int) ([]domain.Turn, error) {
	return s.store.History(ctx, sessionID, limit)
}

// Session returns a session record, or nil when the id is unknown.
func (s *Service) Session(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.store.GetSession(ctx, sessionID)
}

func (s *Service) appendTurn(ctx context.Context, sessionID string, role domain.Role, content string) error {
	turn := &domain.Turn{
		TurnID:    "turn_" + uuid.New().String()[:8],
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.store.AppendTurn(ctx, turn); err != nil {
		return fmt.Errorf("failed to append turn: %w", err)
	}
	return nil
}
