// Package policy evaluates the methodology selection rules via OPA.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Engine is the OPA rule engine for methodology selection.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates an engine from the given rego policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.methodology.recommendation"),
		rego.Module("methodology.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate runs the rule set against the given input.
// Input is a map with keys: team_size, challenges, goals.
// Returns the selected methodology identifier.
func (e *Engine) Evaluate(ctx context.Context, input interface{}) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return "", fmt.Errorf("policy produced no decision")
	}

	val := results[0].Expressions[0].Value
	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("policy returned unexpected type %T", val)
	}
	return s, nil
}

// DefaultPolicy encodes the selection rules. The rules are an else chain,
// so evaluation is ordered and first-match-wins: a later rule never
// overrides an earlier match. The final else makes the chain exhaustive.
const DefaultPolicy = `
package methodology

import rego.v1

recommendation := "scrum" if {
	"Scope creep" in input.challenges
	"Meeting deadlines" in input.challenges
} else := "kanban" if {
	"Unpredictable workflow" in input.challenges
} else := "kanban" if {
	input.team_size == "1-5 members"
} else := "xp" if {
	"Quality issues" in input.challenges
} else := "lean" if {
	"Reduced costs" in input.goals
} else := "scrum" if {
	input.team_size != "1-5 members"
} else := "kanban"
`
