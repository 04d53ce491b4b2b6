package service

import (
	"context"
	"fmt"

	"github.com/melisasvr/Agile-Project-Consultant/internal/domain"
	"github.com/melisasvr/Agile-Project-Consultant/internal/planner"
)

// showImplementationSteps emits the step list for the current
// recommendation. Calling it before the assessment is complete yields a
// guidance message, not an error, and no step list.
func (s *Service) showImplementationSteps(ctx context.Context, ev *domain.Event) ([]domain.Reply, error) {
	sess, err := s.store.GetOrCreateSession(ctx, ev.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get/create session: %w", err)
	}

	if !sess.AssessmentComplete {
		guidance := "Please complete the assessment first so I can provide personalized implementation steps."
		if err := s.appendTurn(ctx, ev.SessionID, domain.RoleAgent, guidance); err != nil {
			return nil, err
		}
		return []domain.Reply{domain.TextReply(guidance)}, nil
	}

	// Recomputed from the stored context, never cached.
	rec, err := s.engine.Recommend(ctx, sess.ProjectContext)
	if err != nil {
		return nil, err
	}
	steps := planner.Plan(rec.MethodologyID, sess.ProjectContext.CurrentMethodology())

	card := &domain.SectionCard{
		Title:       rec.Name + " Implementation Steps",
		Description: "Follow these steps to successfully implement or improve your agile process:",
		Buttons: []domain.ActionButton{
			{Label: "Ask Follow-up Question", Action: domain.ActionAskQuestion},
		},
	}
	for i, step := range steps {
		card.Sections = append(card.Sections, domain.CardSection{
			Title: fmt.Sprintf("Step %d: %s", i+1, step.Title),
			Body:  step.Description,
		})
	}

	summary := fmt.Sprintf("Here are the %s implementation steps I recommend.", rec.Name)
	if err := s.appendTurn(ctx, ev.SessionID, domain.RoleAgent, summary); err != nil {
		return nil, err
	}

	return []domain.Reply{
		{Kind: domain.ReplySectionCard, Card: card},
	}, nil
}
