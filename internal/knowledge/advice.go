package knowledge

import (
	"strings"

	"github.com/melisasvr/Agile-Project-Consultant/internal/domain"
)

// Fixed advice texts returned by the intent router for the fixed topics.
const (
	EstimationAdvice = "For better estimations, consider these techniques:\n" +
		"1. Use relative sizing (story points) instead of time\n" +
		"2. Implement Planning Poker for collaborative estimation\n" +
		"3. Break down larger items into smaller, more predictable pieces\n" +
		"4. Maintain an estimation guide with reference stories\n" +
		"5. Regularly review your estimation accuracy to improve over time"

	RetrospectiveAdvice = "To improve your retrospectives:\n" +
		"1. Use varied formats to keep them engaging (e.g., Start-Stop-Continue, 4Ls)\n" +
		"2. Focus on actionable improvements, not just venting\n" +
		"3. Follow up on action items from previous retrospectives\n" +
		"4. Create a safe space for honest feedback\n" +
		"5. Timebox discussions to stay productive"

	RemoteTeamAdvice = "For effective remote/distributed agile teams:\n" +
		"1. Use video for all ceremonies to improve engagement\n" +
		"2. Invest in digital collaboration tools (digital boards, documentation)\n" +
		"3. Schedule regular social interactions to build team cohesion\n" +
		"4. Be explicit about working agreements and communication norms\n" +
		"5. Consider asynchronous updates to accommodate different time zones"

	KanbanBoardAdvice = "To set up an effective Kanban board:\n" +
		"1. Design 3-5 columns that reflect your actual workflow\n" +
		"2. Set WIP limits of 2-3 tasks per column initially\n" +
		"3. Make process policies explicit on the board itself\n" +
		"4. Use the board as an information radiator for the whole team\n" +
		"5. Review flow weekly to optimize throughput"

	TDDAdvice = "To adopt Test-Driven Development:\n" +
		"1. Start with a single module to demonstrate value\n" +
		"2. Write the failing test first, then the minimal passing code\n" +
		"3. Refactor with the safety net of a green suite\n" +
		"4. Automate the suite in a Continuous Integration pipeline\n" +
		"5. Track defect rates to show TDD's impact on quality"

	PairProgrammingAdvice = "To get the most from Pair Programming:\n" +
		"1. Rotate pairs weekly to spread knowledge\n" +
		"2. Switch driver and navigator roles frequently\n" +
		"3. Use pairing as built-in mentoring for new members\n" +
		"4. Timebox sessions to avoid fatigue\n" +
		"5. Pair on the riskiest or least-understood work first"
)

// GeneralPractices are cross-methodology best practices, rendered as a
// sectioned card by the general_practices action.
var GeneralPractices = []domain.CardSection{
	{Title: "Customer Collaboration", Body: "Involve customers throughout the development process"},
	{Title: "Embrace Change", Body: "Be flexible and adapt to changing requirements"},
	{Title: "Deliver Frequently", Body: "Release working software in short cycles"},
	{Title: "Sustainable Pace", Body: "Maintain a pace the team can sustain indefinitely"},
	{Title: "Technical Excellence", Body: "Focus on good design and clean code"},
}

// ChallengeStrategy holds coping strategies for one common challenge, with
// optional methodology-specific addenda.
type ChallengeStrategy struct {
	// Label matches the challenge option in the question catalog.
	Label      string
	Keywords   []string
	Strategies []string
	XPSpecific []string
	Kanban     []string
}

var challengeStrategies = []ChallengeStrategy{
	{
		Label:    "Resistance to change",
		Keywords: []string{"resistance to change", "resistance", "buy-in"},
		Strategies: []string{
			"Demonstrate small wins with pilot projects.",
			"Educate on benefits with real-world examples.",
			"Involve team in process design for ownership.",
			"Address concerns in retrospectives with action plans.",
		},
		XPSpecific: []string{
			"Use Pair Programming to build trust and reduce resistance.",
			"Show TDD's impact on reducing defects early.",
		},
		Kanban: []string{
			"Use a Kanban board to visualize progress, easing transition concerns.",
			"Start with low WIP limits to show quick wins.",
		},
	},
	{
		Label:    "Lack of engagement",
		Keywords: []string{"lack of engagement", "engagement", "motivation"},
		Strategies: []string{
			"Connect tasks to the product vision for purpose.",
			"Rotate roles to maintain interest.",
			"Celebrate milestones with team recognition.",
			"Encourage innovation through hackathons or experiments.",
		},
		XPSpecific: []string{
			"Rotate pairs in Pair Programming to foster collaboration.",
			"Use TDD to give developers immediate feedback, boosting engagement.",
		},
		Kanban: []string{
			"Involve the team in designing the Kanban board for ownership.",
			"Use daily standups to encourage participation.",
		},
	},
	{
		Label:    "Poor communication",
		Keywords: []string{"poor communication", "communication"},
		Strategies: []string{
			"Establish clear team agreements on communication channels.",
			"Use visual tools like Kanban boards or burndown charts.",
			"Timebox ceremonies to keep discussions focused.",
			"Implement daily check-ins for alignment.",
		},
		XPSpecific: []string{
			"Leverage Pair Programming for real-time communication.",
			"Use Continuous Integration feedback to align on code quality.",
		},
		Kanban: []string{
			"Use the Kanban board as an information radiator for transparency.",
			"Review board updates in daily standups to align the team.",
		},
	},
	{
		Label:    "Inconsistent estimation",
		Keywords: []string{"inconsistent estimation"},
		Strategies: []string{
			"Use story points and Planning Poker for consensus.",
			"Maintain a reference backlog for sizing consistency.",
			"Review past estimates in retrospectives.",
			"Break tasks into smaller, estimable units.",
		},
		XPSpecific: []string{
			"Estimate tasks collaboratively during TDD planning.",
			"Use Simple Design to keep tasks small and predictable.",
		},
	},
	{
		Label:    "Scope creep",
		Keywords: []string{"scope creep", "changing scope"},
		Strategies: []string{
			"Prioritize backlog items with stakeholders regularly.",
			"Define strict 'Done' criteria for each task.",
			"Implement a change request process.",
			"Educate stakeholders on trade-offs of adding scope.",
		},
		XPSpecific: []string{
			"Use TDD to ensure new features meet quality standards.",
			"Refactor code to accommodate changes without technical debt.",
		},
	},
	{
		Label:    "Quality issues",
		Keywords: []string{"quality issues", "defects", "bugs"},
		Strategies: []string{
			"Implement automated testing suites.",
			"Conduct code reviews before merging.",
			"Define quality metrics like defect rates.",
			"Train team on best practices.",
		},
		XPSpecific: []string{
			"Adopt TDD to catch defects early.",
			"Use Continuous Integration to ensure code stability.",
		},
	},
	{
		Label:    "Meeting deadlines",
		Keywords: []string{"meeting deadlines", "deadlines", "late delivery"},
		Strategies: []string{
			"Break work into smaller iterations.",
			"Track velocity to predict delivery.",
			"Remove blockers promptly in daily standups.",
			"Negotiate scope with stakeholders.",
		},
		XPSpecific: []string{
			"Use TDD to reduce rework, speeding up delivery.",
			"Implement Continuous Integration for faster feedback.",
		},
		Kanban: []string{
			"Optimize flow with WIP limits to meet deadlines.",
			"Track Cycle Time to identify delays early.",
		},
	},
	{
		Label:    "Stakeholder management",
		Keywords: []string{"stakeholder management", "stakeholders"},
		Strategies: []string{
			"Schedule regular stakeholder reviews.",
			"Use demos to align on expectations.",
			"Create transparent progress dashboards.",
			"Train team on stakeholder communication.",
		},
		XPSpecific: []string{
			"Show TDD test results to stakeholders for quality assurance.",
			"Use Simple Design to explain technical decisions clearly.",
		},
	},
}

// FindChallenge matches a lowercased query against the challenge keyword
// lists, first match wins.
func FindChallenge(queryLower string) (ChallengeStrategy, bool) {
	for _, cs := range challengeStrategies {
		for _, kw := range cs.Keywords {
			if strings.Contains(queryLower, kw) {
				return cs, true
			}
		}
	}
	return ChallengeStrategy{}, false
}

type metricEntry struct {
	advice  domain.MetricAdvice
	bestFor []domain.MethodologyID
	goals   []string
}

var metrics = []metricEntry{
	{
		advice: domain.MetricAdvice{
			Metric:       "Velocity",
			Description:  "Measures work completed per iteration, useful for predicting capacity.",
			HowToMeasure: "Sum story points completed per sprint.",
		},
		bestFor: []domain.MethodologyID{domain.MethodologyScrum},
		goals:   []string{"Better predictability"},
	},
	{
		advice: domain.MetricAdvice{
			Metric:       "Cycle Time",
			Description:  "Time from starting a task to its completion, indicating efficiency.",
			HowToMeasure: "Average time from 'In Progress' to 'Done' in days/hours.",
		},
		bestFor: []domain.MethodologyID{domain.MethodologyKanban, domain.MethodologyXP, domain.MethodologyLean},
		goals:   []string{"Faster delivery"},
	},
	{
		advice: domain.MetricAdvice{
			Metric:       "Lead Time",
			Description:  "Time from task request to delivery, showing responsiveness.",
			HowToMeasure: "Average time from backlog entry to completion.",
		},
		bestFor: []domain.MethodologyID{domain.MethodologyKanban, domain.MethodologyXP, domain.MethodologyLean},
		goals:   []string{"Faster delivery"},
	},
	{
		advice: domain.MetricAdvice{
			Metric:       "Defect Rate",
			Description:  "Number of bugs found post-release, indicating quality.",
			HowToMeasure: "Bugs per feature or per sprint, tracked in a bug system.",
		},
		bestFor: []domain.MethodologyID{domain.MethodologyXP},
		goals:   []string{"Higher quality"},
	},
	{
		advice: domain.MetricAdvice{
			Metric:       "Team Happiness",
			Description:  "Team satisfaction and engagement, critical for retention.",
			HowToMeasure: "Survey team (1-5 scale) biweekly or monthly.",
		},
		bestFor: domain.MethodologyIDs,
		goals:   []string{"Team satisfaction"},
	},
}

// RecommendMetrics picks up to three metrics that fit the methodology or the
// stated goals, goal matches first.
func RecommendMetrics(id domain.MethodologyID, goals []string) []domain.MetricAdvice {
	const max = 3
	var out []domain.MetricAdvice
	seen := make(map[string]bool)

	add := func(m domain.MetricAdvice) {
		if len(out) < max && !seen[m.Metric] {
			out = append(out, m)
			seen[m.Metric] = true
		}
	}

	for _, e := range metrics {
		for _, g := range e.goals {
			for _, want := range goals {
				if g == want {
					add(e.advice)
				}
			}
		}
	}
	for _, e := range metrics {
		for _, fit := range e.bestFor {
			if fit == id {
				add(e.advice)
			}
		}
	}
	return out
}
