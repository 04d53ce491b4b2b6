package recommend

import (
	"context"
	"testing"

	"github.com/melisasvr/Agile-Project-Consultant/internal/domain"
	"github.com/melisasvr/Agile-Project-Consultant/policy"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	rules, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return New(rules)
}

func contextWith(teamSize string, challenges, goals []string) domain.ProjectContext {
	pc := domain.ProjectContext{}
	if teamSize != "" {
		pc["team_size"] = domain.Answer{Value: teamSize}
	}
	if challenges != nil {
		pc["challenges"] = domain.Answer{Values: challenges}
	}
	if goals != nil {
		pc["goals"] = domain.Answer{Values: goals}
	}
	return pc
}

func TestRecommendRuleOrder(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	cases := []struct {
		name string
		pc   domain.ProjectContext
		want domain.MethodologyID
	}{
		{
			name: "scope creep and deadlines pick scrum",
			pc:   contextWith("6-12 members", []string{"Scope creep", "Meeting deadlines"}, nil),
			want: domain.MethodologyScrum,
		},
		{
			name: "small team picks kanban",
			pc:   contextWith("1-5 members", []string{}, nil),
			want: domain.MethodologyKanban,
		},
		{
			name: "quality issues pick xp",
			pc:   contextWith("6-12 members", []string{"Quality issues"}, nil),
			want: domain.MethodologyXP,
		},
		{
			name: "reduced costs goal picks lean",
			pc:   contextWith("6-12 members", []string{}, []string{"Reduced costs"}),
			want: domain.MethodologyLean,
		},
		{
			name: "large team default picks scrum",
			pc:   contextWith("13+ members", []string{}, nil),
			want: domain.MethodologyScrum,
		},
		{
			name: "unpredictable workflow beats size",
			pc:   contextWith("13+ members", []string{"Unpredictable workflow"}, nil),
			want: domain.MethodologyKanban,
		},
		{
			name: "scope creep alone falls through to xp on quality issues",
			pc:   contextWith("6-12 members", []string{"Scope creep", "Quality issues"}, nil),
			want: domain.MethodologyXP,
		},
		{
			name: "earlier rule wins over later",
			pc:   contextWith("6-12 members", []string{"Scope creep", "Meeting deadlines", "Quality issues"}, []string{"Reduced costs"}),
			want: domain.MethodologyScrum,
		},
		{
			name: "small team wins over xp and lean",
			pc:   contextWith("1-5 members", []string{"Quality issues"}, []string{"Reduced costs"}),
			want: domain.MethodologyKanban,
		},
		{
			name: "empty context still resolves",
			pc:   domain.ProjectContext{},
			want: domain.MethodologyScrum,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := engine.Recommend(ctx, tc.pc)
			if err != nil {
				t.Fatalf("Recommend failed: %v", err)
			}
			if rec.MethodologyID != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, rec.MethodologyID)
			}
		})
	}
}

func TestRecommendIsDeterministic(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)
	pc := contextWith("6-12 members", []string{"Quality issues"}, []string{"Higher quality"})

	first, err := engine.Recommend(ctx, pc)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := engine.Recommend(ctx, pc)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		if again.MethodologyID != first.MethodologyID || again.Rationale != first.Rationale {
			t.Fatalf("recommendation changed between runs: %+v vs %+v", first, again)
		}
	}
}

func TestRecommendCarriesCatalogSnapshot(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	rec, err := engine.Recommend(ctx, contextWith("6-12 members", []string{"Quality issues"}, nil))
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if rec.Name != "XP" {
		t.Fatalf("expected display name XP, got %q", rec.Name)
	}
	if rec.Description == "" || len(rec.BestFor) == 0 {
		t.Fatalf("expected catalog snapshot, got %+v", rec)
	}
	if len(rec.Sections) == 0 {
		t.Fatalf("expected attribute sections")
	}
}

func TestRecommendRationaleMentionsTeamSize(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	rec, err := engine.Recommend(ctx, contextWith("1-5 members", nil, nil))
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	want := "Based on your 1-5 members team size and challenges, KANBAN would be a good fit."
	if rec.Rationale != want {
		t.Fatalf("unexpected rationale: %q", rec.Rationale)
	}

	rec, err = engine.Recommend(ctx, domain.ProjectContext{})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	want = "Based on your unspecified team size and challenges, SCRUM would be a good fit."
	if rec.Rationale != want {
		t.Fatalf("unexpected rationale: %q", rec.Rationale)
	}
}

func TestRecommendMetricsFollowGoals(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	rec, err := engine.Recommend(ctx, contextWith("6-12 members", []string{"Quality issues"}, []string{"Higher quality"}))
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(rec.Metrics) == 0 {
		t.Fatalf("expected metric advice")
	}
	if len(rec.Metrics) > 3 {
		t.Fatalf("expected at most 3 metrics, got %d", len(rec.Metrics))
	}
}
