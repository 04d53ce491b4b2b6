package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/melisasvr/Agile-Project-Consultant/internal/domain"
	"github.com/melisasvr/Agile-Project-Consultant/internal/knowledge"
)

// handleWelcome greets the user and offers the next steps. A returning
// session with stored context gets a tailored greeting instead of the
// first-time one.
func (s *Service) handleWelcome(ctx context.Context, ev *domain.Event) ([]domain.Reply, error) {
	sess, err := s.store.GetOrCreateSession(ctx, ev.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get/create session: %w", err)
	}

	welcome := "Welcome! I'm your Agile Project Consultant. I can help you implement or improve " +
		"agile practices for your team. To provide tailored recommendations, I'll need " +
		"to understand your current situation."
	if len(sess.ProjectContext) > 0 {
		welcome = fmt.Sprintf(
			"Welcome back! I'm here to help your %s team optimize %s. "+
				"Try asking about a challenge or practice, or start a new assessment for fresh recommendations.",
			orDefault(sess.ProjectContext.TeamSize(), "current"),
			sess.ProjectContext.CurrentMethodology())
	}

	if err := s.appendTurn(ctx, ev.SessionID, domain.RoleAgent, welcome); err != nil {
		return nil, err
	}

	return []domain.Reply{
		domain.TextReply(welcome),
		{Kind: domain.ReplyChoiceCard, Choice: &domain.ChoiceCard{
			Title: "How would you like to proceed?",
			Buttons: []domain.ActionButton{
				{Label: "Start Assessment", Action: domain.ActionStartAssessment},
				{Label: "Ask a Question", Action: domain.ActionAskQuestion},
			},
		}},
	}, nil
}

// startAssessment renders the question catalog as a form panel.
func (s *Service) startAssessment(ctx context.Context, ev *domain.Event) ([]domain.Reply, error) {
	intro := "Great! Let's start with understanding your team and project context."
	if err := s.appendTurn(ctx, ev.SessionID, domain.RoleAgent, intro); err != nil {
		return nil, err
	}
	return []domain.Reply{
		domain.TextReply(intro),
		{Kind: domain.ReplyFormPanel, Form: AssessmentForm()},
	}, nil
}

// AssessmentForm builds the form panel for the question catalog.
func AssessmentForm() *domain.FormPanel {
	questions := knowledge.Questions()
	fields := make([]domain.FormField, 0, len(questions))
	for _, q := range questions {
		fields = append(fields, domain.FormField{
			QuestionID: q.ID,
			Prompt:     q.Prompt,
			Kind:       q.Kind,
			Options:    append([]string(nil), q.Options...),
		})
	}
	return &domain.FormPanel{
		Title:        "Agile Project Assessment",
		Description:  "Please answer the following questions to help me understand your situation.",
		Fields:       fields,
		SubmitLabel:  "Submit Assessment",
		SubmitAction: domain.ActionSubmitAssessment,
	}
}

// submitAssessment validates the form payload, stores the answers, marks
// the assessment complete, and emits the recommendation. An invalid payload
// produces a field-level error list and leaves the session untouched.
func (s *Service) submitAssessment(ctx context.Context, ev *domain.Event) ([]domain.Reply, error) {
	var payload domain.SubmissionPayload
	if len(ev.Payload) > 0 {
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			return []domain.Reply{
				{Kind: domain.ReplyFieldErrors, FieldErrors: []domain.FieldError{
					{QuestionID: "", Message: "submission payload must be a JSON object of answers"},
				}},
			}, nil
		}
	}

	answers, fieldErrors := validateSubmission(payload)
	if len(fieldErrors) > 0 {
		return []domain.Reply{
			domain.TextReply("Some answers need attention before I can analyze your situation."),
			{Kind: domain.ReplyFieldErrors, FieldErrors: fieldErrors},
		}, nil
	}

	sess, err := s.store.UpdateSession(ctx, ev.SessionID, func(sess *domain.Session) error {
		if sess.ProjectContext == nil {
			sess.ProjectContext = domain.ProjectContext{}
		}
		for id, ans := range answers {
			sess.ProjectContext[id] = ans
		}
		sess.AssessmentComplete = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store assessment: %w", err)
	}

	rec, err := s.engine.Recommend(ctx, sess.ProjectContext)
	if err != nil {
		return nil, err
	}

	summary := fmt.Sprintf(
		"Based on your inputs, I recommend %s methodology. This is particularly well-suited for %s. "+
			"Would you like more specific advice on implementing this approach?",
		rec.Name, strings.Join(rec.BestFor, ", "))
	if err := s.appendTurn(ctx, ev.SessionID, domain.RoleAgent, summary); err != nil {
		return nil, err
	}

	return []domain.Reply{
		domain.TextReply("Thanks for completing the assessment. I'm analyzing your responses..."),
		{Kind: domain.ReplySectionCard, Card: recommendationCard(rec)},
		domain.TextReply(summary),
	}, nil
}

// validateSubmission checks each submitted answer against the catalog:
// unknown question ids, empty answers, and choice answers outside the
// allowed option set are rejected. Missing questions are allowed; the
// context may be partial.
func validateSubmission(payload domain.SubmissionPayload) (map[string]domain.Answer, []domain.FieldError) {
	answers := make(map[string]domain.Answer, len(payload))
	var fieldErrors []domain.FieldError

	fail := func(id, msg string) {
		fieldErrors = append(fieldErrors, domain.FieldError{QuestionID: id, Message: msg})
	}

	for id, raw := range payload {
		q, ok := knowledge.QuestionByID(id)
		if !ok {
			fail(id, "unknown question")
			continue
		}

		switch q.Kind {
		case domain.AnswerText, domain.AnswerSingleChoice:
			var value string
			if err := json.Unmarshal(raw, &value); err != nil {
				fail(id, "answer must be a string")
				continue
			}
			if strings.TrimSpace(value) == "" {
				fail(id, "answer cannot be empty")
				continue
			}
			if q.Kind == domain.AnswerSingleChoice && !contains(q.Options, value) {
				fail(id, fmt.Sprintf("%q is not an allowed option", value))
				continue
			}
			answers[id] = domain.Answer{Value: value}

		case domain.AnswerMultiChoice:
			var values []string
			if err := json.Unmarshal(raw, &values); err != nil {
				fail(id, "answer must be a list of strings")
				continue
			}
			if len(values) == 0 {
				fail(id, "answer cannot be empty")
				continue
			}
			valid := true
			for _, v := range values {
				if !contains(q.Options, v) {
					fail(id, fmt.Sprintf("%q is not an allowed option", v))
					valid = false
					break
				}
			}
			if valid {
				answers[id] = domain.Answer{Values: values}
			}
		}
	}
	return answers, fieldErrors
}

func recommendationCard(rec *domain.Recommendation) *domain.SectionCard {
	card := &domain.SectionCard{
		Title:       "Recommended: " + rec.Name,
		Description: rec.Description,
		Sections: []domain.CardSection{
			{Title: "Why This Fits Your Team", Body: rec.Rationale},
		},
		Buttons: []domain.ActionButton{
			{Label: "Implementation Steps", Action: domain.ActionShowSteps},
			{Label: "Ask Follow-up Question", Action: domain.ActionAskQuestion},
		},
	}
	for _, sec := range rec.Sections {
		card.Sections = append(card.Sections, domain.CardSection{
			Title: "Key " + sec.Name,
			Body:  strings.Join(sec.Items, ", "),
		})
	}
	if len(rec.Metrics) > 0 {
		var lines []string
		for _, m := range rec.Metrics {
			lines = append(lines, fmt.Sprintf("%s: %s", m.Metric, m.HowToMeasure))
		}
		card.Sections = append(card.Sections, domain.CardSection{
			Title: "Key Metrics",
			Body:  strings.Join(lines, "\n"),
		})
	}
	return card
}

func contains(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
