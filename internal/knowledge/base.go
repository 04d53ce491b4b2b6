// Package knowledge holds the static methodology catalog, the assessment
// question catalog, and the advice texts. All data is immutable for the
// process lifetime.
package knowledge

import "github.com/melisasvr/Agile-Project-Consultant/internal/domain"

var methodologies = map[domain.MethodologyID]domain.Methodology{
	domain.MethodologyScrum: {
		ID:          domain.MethodologyScrum,
		Description: "Framework that helps teams work together through regular cadences of work and structured artifacts.",
		BestFor:     []string{"teams of 3-9 members", "complex products", "environments with changing requirements"},
		Attributes: domain.ScrumAttributes{
			Ceremonies: []string{"Sprint Planning", "Daily Standup", "Sprint Review", "Sprint Retrospective"},
			Roles:      []string{"Product Owner", "Scrum Master", "Development Team"},
			Artifacts:  []string{"Product Backlog", "Sprint Backlog", "Increment"},
		},
	},
	domain.MethodologyKanban: {
		ID:          domain.MethodologyKanban,
		Description: "Visual workflow management method focused on delivering value continuously without overloading the team.",
		BestFor:     []string{"support teams", "operations work", "projects with unpredictable requests"},
		Attributes: domain.KanbanAttributes{
			Principles: []string{"Visualize workflow", "Limit work in progress", "Manage flow", "Make process policies explicit"},
			Practices:  []string{"Kanban board", "WIP limits", "Continuous delivery", "Feedback loops"},
		},
	},
	domain.MethodologyXP: {
		ID:          domain.MethodologyXP,
		Description: "Software development methodology focused on engineering practices to ensure high-quality code.",
		BestFor:     []string{"small co-located teams", "complex code bases", "environments requiring high quality"},
		Attributes: domain.XPAttributes{
			Practices: []string{"Pair Programming", "Test-Driven Development", "Continuous Integration", "Simple Design", "Refactoring"},
		},
	},
	domain.MethodologyLean: {
		ID:          domain.MethodologyLean,
		Description: "Approach focused on maximizing value while minimizing waste.",
		BestFor:     []string{"any size team", "organizations seeking efficiency", "process improvement"},
		Attributes: domain.LeanAttributes{
			Principles: []string{"Eliminate waste", "Build quality in", "Create knowledge", "Defer commitment", "Deliver fast"},
		},
	},
}

// Methodology returns the catalog entry for the given identifier. The set
// is closed, so lookups with a valid MethodologyID always succeed.
func Methodology(id domain.MethodologyID) (domain.Methodology, bool) {
	m, ok := methodologies[id]
	return m, ok
}
