package intent

import (
	"context"
	"strings"
	"testing"

	"github.com/melisasvr/Agile-Project-Consultant/internal/domain"
	"github.com/melisasvr/Agile-Project-Consultant/internal/recommend"
	"github.com/melisasvr/Agile-Project-Consultant/policy"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	rules, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return NewRouter(recommend.New(rules))
}

func textOf(t *testing.T, result *Result) string {
	t.Helper()
	if len(result.Replies) == 0 || result.Replies[0].Kind != domain.ReplyText {
		t.Fatalf("expected a text reply, got %+v", result.Replies)
	}
	return result.Replies[0].Text
}

func TestRouteTopicKeywords(t *testing.T) {
	ctx := context.Background()
	router := newTestRouter(t)
	sess := &domain.Session{SessionID: "s1"}

	cases := []struct {
		name  string
		query string
		want  string
	}{
		{"estimation", "how do I fix my estimation process", "estimation"},
		{"retrospective", "our retrospective meetings feel stale", "retrospective"},
		{"remote", "tips for my remote team", "remote"},
		{"distributed", "we are a distributed team", "remote"},
		{"kanban board", "how should I set up a kanban board", "Kanban board"},
		{"tdd", "is tdd worth it", "Test-Driven Development"},
		{"pair programming", "does pair programming help", "pair programming"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := router.Route(ctx, sess, tc.query)
			if err != nil {
				t.Fatalf("Route failed: %v", err)
			}
			got := textOf(t, result)
			if !strings.Contains(strings.ToLower(got), strings.ToLower(tc.want)) {
				t.Fatalf("expected advice about %q, got %q", tc.want, got)
			}
		})
	}
}

func TestRouteIgnoresSessionStateForTopics(t *testing.T) {
	ctx := context.Background()
	router := newTestRouter(t)

	incomplete := &domain.Session{SessionID: "s1"}
	complete := &domain.Session{
		SessionID:          "s2",
		AssessmentComplete: true,
		ProjectContext: domain.ProjectContext{
			"team_size": {Value: "6-12 members"},
		},
	}

	a, err := router.Route(ctx, incomplete, "help with estimation")
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	b, err := router.Route(ctx, complete, "help with estimation")
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if textOf(t, a) != textOf(t, b) {
		t.Fatalf("topic advice should not depend on session state")
	}
}

func TestRouteStartAssessmentShortCircuit(t *testing.T) {
	ctx := context.Background()
	router := newTestRouter(t)
	sess := &domain.Session{SessionID: "s1"}

	result, err := router.Route(ctx, sess, "I want to start the assessment")
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if !result.StartAssessment {
		t.Fatalf("expected StartAssessment")
	}
	if len(result.Replies) != 0 {
		t.Fatalf("expected no replies on short-circuit, got %d", len(result.Replies))
	}
}

func TestRouteKeywordPrecedence(t *testing.T) {
	ctx := context.Background()
	router := newTestRouter(t)
	sess := &domain.Session{SessionID: "s1"}

	// "estimation" is checked before the start-assessment pair.
	result, err := router.Route(ctx, sess, "should I start an estimation assessment")
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if result.StartAssessment {
		t.Fatalf("expected the estimation topic to win")
	}
	got := textOf(t, result)
	if !strings.Contains(strings.ToLower(got), "estimation") {
		t.Fatalf("expected estimation advice, got %q", got)
	}
}

func TestRouteChallengeLookup(t *testing.T) {
	ctx := context.Background()
	router := newTestRouter(t)
	sess := &domain.Session{SessionID: "s1"}

	result, err := router.Route(ctx, sess, "we struggle with scope creep")
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	got := textOf(t, result)
	if !strings.Contains(got, "scope creep") || !strings.Contains(got, "1.") {
		t.Fatalf("expected a numbered strategy list, got %q", got)
	}
}

func TestRouteChallengePersonalization(t *testing.T) {
	ctx := context.Background()
	router := newTestRouter(t)

	// Quality issues push the recommendation to XP, which unlocks the
	// XP-specific lines of the quality challenge entry.
	sess := &domain.Session{
		SessionID:          "s1",
		AssessmentComplete: true,
		ProjectContext: domain.ProjectContext{
			"team_size":  {Value: "6-12 members"},
			"challenges": {Values: []string{"Quality issues"}},
		},
	}

	personalized, err := router.Route(ctx, sess, "how do we fix our quality issues")
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	generic, err := router.Route(ctx, &domain.Session{SessionID: "s2"}, "how do we fix our quality issues")
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if len(textOf(t, personalized)) <= len(textOf(t, generic)) {
		t.Fatalf("expected extra strategies for the recommended methodology")
	}
}

func TestRouteFallbackBeforeAssessment(t *testing.T) {
	ctx := context.Background()
	router := newTestRouter(t)
	sess := &domain.Session{SessionID: "s1"}

	result, err := router.Route(ctx, sess, "what color should our stickies be")
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if len(result.Replies) != 2 {
		t.Fatalf("expected text plus choice card, got %d replies", len(result.Replies))
	}
	if !strings.Contains(result.Replies[0].Text, `"what color should our stickies be"`) {
		t.Fatalf("expected the query echoed back, got %q", result.Replies[0].Text)
	}
	choice := result.Replies[1].Choice
	if choice == nil || len(choice.Buttons) != 2 {
		t.Fatalf("expected a two-button choice card, got %+v", result.Replies[1])
	}
	if choice.Buttons[0].Action != domain.ActionStartAssessment ||
		choice.Buttons[1].Action != domain.ActionContinueChat {
		t.Fatalf("unexpected buttons: %+v", choice.Buttons)
	}
}

func TestRouteFallbackAfterAssessment(t *testing.T) {
	ctx := context.Background()
	router := newTestRouter(t)
	sess := &domain.Session{
		SessionID:          "s1",
		AssessmentComplete: true,
		ProjectContext: domain.ProjectContext{
			"team_size": {Value: "1-5 members"},
		},
	}

	result, err := router.Route(ctx, sess, "what color should our stickies be")
	if err != nil {
		t.Fatalf("Route failed: %v", err)
	}
	if len(result.Replies) != 2 {
		t.Fatalf("expected text plus choice card, got %d replies", len(result.Replies))
	}
	if !strings.Contains(result.Replies[0].Text, "KANBAN") {
		t.Fatalf("expected the recommended methodology in the response, got %q", result.Replies[0].Text)
	}
	choice := result.Replies[1].Choice
	if choice == nil || len(choice.Buttons) != 2 {
		t.Fatalf("expected a two-button choice card, got %+v", result.Replies[1])
	}
	if choice.Buttons[0].Label != "KANBAN-specific approach" {
		t.Fatalf("unexpected first button: %+v", choice.Buttons[0])
	}
	if choice.Buttons[0].Action != domain.ActionMethodologySpecific ||
		choice.Buttons[1].Action != domain.ActionGeneralPractices {
		t.Fatalf("unexpected buttons: %+v", choice.Buttons)
	}
}
