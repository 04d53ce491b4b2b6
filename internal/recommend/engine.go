// Package recommend derives a methodology recommendation from a project
// context. The engine is stateless: every call evaluates the rule set
// against the context it is given, so a later context update yields a
// different recommendation on the next request.
package recommend

import (
	"context"
	"fmt"

	"github.com/melisasvr/Agile-Project-Consultant/internal/domain"
	"github.com/melisasvr/Agile-Project-Consultant/internal/knowledge"
	"github.com/melisasvr/Agile-Project-Consultant/policy"
)

// Engine maps a project context to one methodology plus justification.
type Engine struct {
	rules *policy.Engine
}

// New creates an engine backed by the given rule engine.
func New(rules *policy.Engine) *Engine {
	return &Engine{rules: rules}
}

// Recommend evaluates the selection rules against the context and returns
// the recommendation with a verbatim snapshot of the methodology's catalog
// attributes. The rule chain is exhaustive, so the identifier is always one
// of the four known methodologies.
func (e *Engine) Recommend(ctx context.Context, pc domain.ProjectContext) (*domain.Recommendation, error) {
	input := map[string]interface{}{
		"team_size":  pc.TeamSize(),
		"challenges": stringSlice(pc.Challenges()),
		"goals":      stringSlice(pc.Goals()),
	}

	decision, err := e.rules.Evaluate(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate selection rules: %w", err)
	}

	id := domain.MethodologyID(decision)
	m, ok := knowledge.Methodology(id)
	if !ok {
		return nil, fmt.Errorf("selection rules produced unknown methodology %q", decision)
	}

	teamSize := pc.TeamSize()
	if teamSize == "" {
		teamSize = "unspecified"
	}

	return &domain.Recommendation{
		MethodologyID: id,
		Name:          m.DisplayName(),
		Description:   m.Description,
		Rationale: fmt.Sprintf("Based on your %s team size and challenges, %s would be a good fit.",
			teamSize, m.DisplayName()),
		BestFor:  append([]string(nil), m.BestFor...),
		Sections: m.Attributes.Sections(),
		Metrics:  knowledge.RecommendMetrics(id, pc.Goals()),
	}, nil
}

// stringSlice never returns nil so the rego input always carries an array.
func stringSlice(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
