package service

import (
	"context"
	"fmt"

	"github.com/melisasvr/Agile-Project-Consultant/internal/domain"
	"github.com/melisasvr/Agile-Project-Consultant/internal/knowledge"
)

// handleMessage routes free-text input. The triggering user turn and every
// routed text response are appended to history in temporal order.
func (s *Service) handleMessage(ctx context.Context, ev *domain.Event) ([]domain.Reply, error) {
	sess, err := s.store.GetOrCreateSession(ctx, ev.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get/create session: %w", err)
	}

	if err := s.appendTurn(ctx, ev.SessionID, domain.RoleUser, ev.Text); err != nil {
		return nil, err
	}

	result, err := s.router.Route(ctx, sess, ev.Text)
	if err != nil {
		return nil, err
	}
	if result.StartAssessment {
		// Short-circuit into the assessment flow; no response of the
		// router's own.
		return s.startAssessment(ctx, ev)
	}

	for _, reply := range result.Replies {
		if reply.Kind == domain.ReplyText {
			if err := s.appendTurn(ctx, ev.SessionID, domain.RoleAgent, reply.Text); err != nil {
				return nil, err
			}
		}
	}
	return result.Replies, nil
}

func (s *Service) askQuestion(ctx context.Context, ev *domain.Event) ([]domain.Reply, error) {
	text := "What specific question do you have about agile methodologies or your implementation?"
	if err := s.appendTurn(ctx, ev.SessionID, domain.RoleAgent, text); err != nil {
		return nil, err
	}
	return []domain.Reply{domain.TextReply(text)}, nil
}

func (s *Service) continueChat(ctx context.Context, ev *domain.Event) ([]domain.Reply, error) {
	text := "I'll do my best to answer your question with the information available. " +
		"For more personalized advice, you can always start the assessment later."
	if err := s.appendTurn(ctx, ev.SessionID, domain.RoleAgent, text); err != nil {
		return nil, err
	}
	return []domain.Reply{domain.TextReply(text)}, nil
}

func (s *Service) methodologySpecific(ctx context.Context, ev *domain.Event) ([]domain.Reply, error) {
	sess, err := s.store.GetOrCreateSession(ctx, ev.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get/create session: %w", err)
	}
	rec, err := s.engine.Recommend(ctx, sess.ProjectContext)
	if err != nil {
		return nil, err
	}

	advice := fmt.Sprintf(
		"When implementing %s, it's important to focus on its core principles while adapting to "+
			"your specific team context. Would you like me to elaborate on any particular aspect?", rec.Name)
	if err := s.appendTurn(ctx, ev.SessionID, domain.RoleAgent, advice); err != nil {
		return nil, err
	}

	return []domain.Reply{
		domain.TextReply(fmt.Sprintf("Let me provide some %s-specific advice for your question...", rec.Name)),
		domain.TextReply(advice),
	}, nil
}

func (s *Service) generalPractices(ctx context.Context, ev *domain.Event) ([]domain.Reply, error) {
	intro := "Here are some general agile best practices that apply across methodologies:"
	if err := s.appendTurn(ctx, ev.SessionID, domain.RoleAgent, intro); err != nil {
		return nil, err
	}
	return []domain.Reply{
		domain.TextReply(intro),
		{Kind: domain.ReplySectionCard, Card: &domain.SectionCard{
			Title:    "Agile Best Practices",
			Sections: append([]domain.CardSection(nil), knowledge.GeneralPractices...),
		}},
	}, nil
}
