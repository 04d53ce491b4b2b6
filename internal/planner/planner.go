// Package planner produces ordered implementation step lists. Plans are
// built fresh per request and never persisted.
package planner

import (
	"fmt"
	"strings"

	"github.com/melisasvr/Agile-Project-Consultant/internal/domain"
)

// Plan maps (recommended methodology, current methodology) to an ordered
// step list. When the team already runs the recommended methodology it gets
// the fixed improvement track; otherwise the adoption track, with one
// methodology-specific step inserted after the pilot step for scrum and
// kanban. An unset current methodology counts as "None/Traditional", which
// never equals a real identifier.
func Plan(recommended domain.MethodologyID, current string) []domain.Step {
	if current == "" {
		current = domain.NoMethodology
	}
	if strings.EqualFold(current, string(recommended)) {
		return improvementSteps()
	}
	return adoptionSteps(recommended)
}

// improvementSteps is the fixed 4-step track for teams already on the
// recommended methodology. It never varies by methodology.
func improvementSteps() []domain.Step {
	return []domain.Step{
		{
			Title:       "Conduct a facilitated retrospective",
			Description: "Review what's working and what's not with your current process.",
		},
		{
			Title:       "Identify 2-3 improvement areas",
			Description: "Based on retrospective results, select a few focus areas.",
		},
		{
			Title:       "Create an experiment for each area",
			Description: "Design small experiments to address each improvement area.",
		},
		{
			Title:       "Implement and measure",
			Description: "Run experiments for 2-3 iterations and collect feedback.",
		},
	}
}

func adoptionSteps(recommended domain.MethodologyID) []domain.Step {
	name := strings.ToUpper(string(recommended))
	steps := []domain.Step{
		{
			Title:       "Education and training",
			Description: fmt.Sprintf("Provide training on %s for the entire team.", name),
		},
		{
			Title:       "Start small",
			Description: "Begin with a pilot project or team to test the approach.",
		},
		{
			Title:       "Define roles and responsibilities",
			Description: "Clearly establish who will take on which roles in the new process.",
		},
		{
			Title:       "Create necessary artifacts",
			Description: fmt.Sprintf("Set up the tools and artifacts needed for %s.", name),
		},
		{
			Title:       "Regular inspection and adaptation",
			Description: "Schedule regular reviews of the process to make adjustments.",
		},
	}

	// Methodology-specific step goes after the pilot step, before roles.
	var extra *domain.Step
	switch recommended {
	case domain.MethodologyScrum:
		extra = &domain.Step{
			Title:       "Establish sprint length",
			Description: "Decide on an appropriate sprint length (typically 1-4 weeks).",
		}
	case domain.MethodologyKanban:
		extra = &domain.Step{
			Title:       "Create Kanban board",
			Description: "Design a board that visualizes your specific workflow.",
		}
	}
	if extra != nil {
		steps = append(steps[:2], append([]domain.Step{*extra}, steps[2:]...)...)
	}
	return steps
}
