// Package intent classifies free-text input into a small set of intents by
// case-insensitive substring matching over an ordered keyword set, first
// match wins. There is no natural-language understanding beyond that.
package intent

import (
	"context"
	"fmt"
	"strings"

	"github.com/melisasvr/Agile-Project-Consultant/internal/domain"
	"github.com/melisasvr/Agile-Project-Consultant/internal/knowledge"
	"github.com/melisasvr/Agile-Project-Consultant/internal/recommend"
)

// Router turns a free-text query into a response, reading the session and
// recomputing the recommendation where the fallback needs it.
type Router struct {
	engine *recommend.Engine
}

// NewRouter creates a router backed by the recommendation engine.
func NewRouter(engine *recommend.Engine) *Router {
	return &Router{engine: engine}
}

// Result is the outcome of routing one query.
type Result struct {
	Replies []domain.Reply

	// StartAssessment short-circuits to the assessment-start flow; no
	// replies of the router's own are produced in that case.
	StartAssessment bool
}

// Route matches the query against the topic keywords in order. Unrecognized
// queries always resolve via the fallback branch; there is no unhandled
// terminal state for free text.
func (r *Router) Route(ctx context.Context, sess *domain.Session, text string) (*Result, error) {
	q := strings.ToLower(text)

	switch {
	case strings.Contains(q, "estimation"):
		return textResult(knowledge.EstimationAdvice), nil
	case strings.Contains(q, "retrospective"):
		return textResult(knowledge.RetrospectiveAdvice), nil
	case strings.Contains(q, "remote") || strings.Contains(q, "distributed"):
		return textResult(knowledge.RemoteTeamAdvice), nil
	case strings.Contains(q, "kanban board"):
		return textResult(knowledge.KanbanBoardAdvice), nil
	case strings.Contains(q, "test-driven") || strings.Contains(q, "tdd"):
		return textResult(knowledge.TDDAdvice), nil
	case strings.Contains(q, "pair programming"):
		return textResult(knowledge.PairProgrammingAdvice), nil
	case strings.Contains(q, "start") && strings.Contains(q, "assessment"):
		return &Result{StartAssessment: true}, nil
	}

	if cs, ok := knowledge.FindChallenge(q); ok {
		return r.challengeResult(ctx, sess, cs)
	}

	return r.fallback(ctx, sess, text)
}

func (r *Router) challengeResult(ctx context.Context, sess *domain.Session, cs knowledge.ChallengeStrategy) (*Result, error) {
	advice := append([]string(nil), cs.Strategies...)

	// Personalize with methodology-specific lines once we know the team.
	if sess.AssessmentComplete {
		rec, err := r.engine.Recommend(ctx, sess.ProjectContext)
		if err != nil {
			return nil, err
		}
		switch rec.MethodologyID {
		case domain.MethodologyXP:
			advice = append(advice, cs.XPSpecific...)
		case domain.MethodologyKanban:
			advice = append(advice, cs.Kanban...)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "To address %s, try these strategies:", strings.ToLower(cs.Label))
	for i, line := range advice {
		fmt.Fprintf(&b, "\n%d. %s", i+1, line)
	}
	return textResult(b.String()), nil
}

func (r *Router) fallback(ctx context.Context, sess *domain.Session, text string) (*Result, error) {
	if !sess.AssessmentComplete {
		response := fmt.Sprintf(
			"I understand you're asking about %q. To provide more specific guidance, "+
				"I'd need more context about your team and project situation. Would you like to complete "+
				"a quick assessment so I can give you personalized recommendations?", text)
		return &Result{Replies: []domain.Reply{
			domain.TextReply(response),
			{Kind: domain.ReplyChoiceCard, Choice: &domain.ChoiceCard{
				Title: "Would you like to:",
				Buttons: []domain.ActionButton{
					{Label: "Start Assessment", Action: domain.ActionStartAssessment},
					{Label: "Just Answer My Question", Action: domain.ActionContinueChat},
				},
			}},
		}}, nil
	}

	rec, err := r.engine.Recommend(ctx, sess.ProjectContext)
	if err != nil {
		return nil, err
	}
	response := fmt.Sprintf(
		"Based on what you've shared about your team using %s, I think addressing "+
			"%q requires a tailored approach. Would you like specific advice on this topic "+
			"in the context of %s, or general best practices?", rec.Name, text, rec.Name)
	return &Result{Replies: []domain.Reply{
		domain.TextReply(response),
		{Kind: domain.ReplyChoiceCard, Choice: &domain.ChoiceCard{
			Title: "Would you like advice on:",
			Buttons: []domain.ActionButton{
				{Label: rec.Name + "-specific approach", Action: domain.ActionMethodologySpecific},
				{Label: "General best practices", Action: domain.ActionGeneralPractices},
			},
		}},
	}}, nil
}

func textResult(text string) *Result {
	return &Result{Replies: []domain.Reply{domain.TextReply(text)}}
}
