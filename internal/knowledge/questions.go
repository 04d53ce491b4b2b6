package knowledge

import "github.com/melisasvr/Agile-Project-Consultant/internal/domain"

var questions = []domain.Question{
	{
		ID:      "team_size",
		Prompt:  "How large is your team?",
		Kind:    domain.AnswerSingleChoice,
		Options: []string{"1-5 members", "6-12 members", "13+ members"},
	},
	{
		ID:     "industry",
		Prompt: "What industry are you in? (e.g., IT, Finance, Healthcare)",
		Kind:   domain.AnswerText,
	},
	{
		ID:      "current_methodology",
		Prompt:  "Are you currently using any agile methodology?",
		Kind:    domain.AnswerSingleChoice,
		Options: []string{"None/Traditional", "Scrum", "Kanban", "XP", "Lean", "Hybrid", "Other"},
	},
	{
		ID:      "experience_level",
		Prompt:  "What is your team's experience level with agile practices?",
		Kind:    domain.AnswerSingleChoice,
		Options: []string{"Beginner", "Intermediate", "Advanced"},
	},
	{
		ID:     "challenges",
		Prompt: "What challenges are you facing? (Select all that apply)",
		Kind:   domain.AnswerMultiChoice,
		Options: []string{
			"Resistance to change",
			"Inconsistent estimation",
			"Scope creep",
			"Poor communication",
			"Lack of engagement",
			"Meeting deadlines",
			"Quality issues",
			"Stakeholder management",
		},
	},
	{
		ID:     "goals",
		Prompt: "What are your primary goals for improving your process? (Select all that apply)",
		Kind:   domain.AnswerMultiChoice,
		Options: []string{
			"Faster delivery",
			"Higher quality",
			"Better predictability",
			"Team satisfaction",
			"Reduced costs",
			"Better customer collaboration",
			"More innovation",
		},
	},
	{
		ID:      "project_complexity",
		Prompt:  "How complex is your project?",
		Kind:    domain.AnswerSingleChoice,
		Options: []string{"Simple", "Moderate", "Complex"},
	},
}

// Questions returns the ordered assessment question catalog.
func Questions() []domain.Question {
	out := make([]domain.Question, len(questions))
	copy(out, questions)
	return out
}

// QuestionByID looks up a catalog question by identifier.
func QuestionByID(id string) (domain.Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q, true
		}
	}
	return domain.Question{}, false
}
