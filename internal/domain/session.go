package domain

import "time"

// Session represents one conversation, keyed by session identifier.
type Session struct {
	SessionID          string         `json:"session_id"`
	AssessmentComplete bool           `json:"assessment_complete"`
	ProjectContext     ProjectContext `json:"project_context"`
	CreatedAt          time.Time      `json:"created_at"`
	LastActiveAt       time.Time      `json:"last_active_at"`
}

// Turn is a single entry in a session's conversation history.
type Turn struct {
	TurnID    string    `json:"turn_id"`
	SessionID string    `json:"session_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Answer holds one submitted assessment answer. Value is set for text and
// single-choice questions, Values for multi-choice.
type Answer struct {
	Value  string   `json:"value,omitempty"`
	Values []string `json:"values,omitempty"`
}

// ProjectContext maps question identifiers to submitted answers.
type ProjectContext map[string]Answer

// Clone returns a deep copy so callers can read context by value.
func (pc ProjectContext) Clone() ProjectContext {
	if pc == nil {
		return nil
	}
	out := make(ProjectContext, len(pc))
	for id, ans := range pc {
		c := Answer{Value: ans.Value}
		if ans.Values != nil {
			c.Values = append([]string(nil), ans.Values...)
		}
		out[id] = c
	}
	return out
}

// TeamSize returns the answered team size band, or "" if unanswered.
func (pc ProjectContext) TeamSize() string {
	return pc["team_size"].Value
}

// Challenges returns the selected challenge labels.
func (pc ProjectContext) Challenges() []string {
	return pc["challenges"].Values
}

// Goals returns the selected goal labels.
func (pc ProjectContext) Goals() []string {
	return pc["goals"].Values
}

// CurrentMethodology returns the answered current methodology, defaulting
// to NoMethodology when the question was not answered.
func (pc ProjectContext) CurrentMethodology() string {
	if v := pc["current_methodology"].Value; v != "" {
		return v
	}
	return NoMethodology
}

// ExperienceLevel returns the answered experience level, or "" if unanswered.
func (pc ProjectContext) ExperienceLevel() string {
	return pc["experience_level"].Value
}
