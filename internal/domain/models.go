package domain

import "strings"

// Question is one entry in the assessment question catalog.
type Question struct {
	ID      string     `json:"id"`
	Prompt  string     `json:"question"`
	Kind    AnswerKind `json:"type"`
	Options []string   `json:"options,omitempty"`
}

// AttributeSection is one named structural attribute list of a methodology,
// e.g. "Ceremonies" or "Practices".
type AttributeSection struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// Attributes is the variant-specific structural attribute set of a
// methodology. The concrete types cover exactly the four identifiers; a
// methodology entry cannot carry sections its variant does not define.
type Attributes interface {
	// Sections returns the attribute sections in display order. The
	// returned slices are fresh copies.
	Sections() []AttributeSection
}

// ScrumAttributes describes scrum's structure.
type ScrumAttributes struct {
	Ceremonies []string
	Roles      []string
	Artifacts  []string
}

// KanbanAttributes describes kanban's structure.
type KanbanAttributes struct {
	Principles []string
	Practices  []string
}

// XPAttributes describes xp's structure.
type XPAttributes struct {
	Practices []string
}

// LeanAttributes describes lean's structure.
type LeanAttributes struct {
	Principles []string
}

func (a ScrumAttributes) Sections() []AttributeSection {
	return []AttributeSection{
		{Name: "Ceremonies", Items: append([]string(nil), a.Ceremonies...)},
		{Name: "Roles", Items: append([]string(nil), a.Roles...)},
		{Name: "Artifacts", Items: append([]string(nil), a.Artifacts...)},
	}
}

func (a KanbanAttributes) Sections() []AttributeSection {
	return []AttributeSection{
		{Name: "Principles", Items: append([]string(nil), a.Principles...)},
		{Name: "Practices", Items: append([]string(nil), a.Practices...)},
	}
}

func (a XPAttributes) Sections() []AttributeSection {
	return []AttributeSection{
		{Name: "Practices", Items: append([]string(nil), a.Practices...)},
	}
}

func (a LeanAttributes) Sections() []AttributeSection {
	return []AttributeSection{
		{Name: "Principles", Items: append([]string(nil), a.Principles...)},
	}
}

// Methodology is one catalog entry.
type Methodology struct {
	ID          MethodologyID
	Description string
	BestFor     []string
	Attributes  Attributes
}

// DisplayName is the uppercased identifier used in user-facing text.
func (m Methodology) DisplayName() string {
	return strings.ToUpper(string(m.ID))
}

// MetricAdvice is a delivery metric recommended alongside a methodology.
type MetricAdvice struct {
	Metric       string `json:"metric"`
	Description  string `json:"description"`
	HowToMeasure string `json:"how_to_measure"`
}

// Recommendation is derived on demand from a project context. It is never
// cached: a later context update yields a different recommendation on the
// next request.
type Recommendation struct {
	MethodologyID MethodologyID      `json:"methodology_id"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Rationale     string             `json:"why_recommended"`
	BestFor       []string           `json:"best_for"`
	Sections      []AttributeSection `json:"sections"`
	Metrics       []MetricAdvice     `json:"metrics,omitempty"`
}

// Step is one actionable implementation step.
type Step struct {
	Title       string `json:"step"`
	Description string `json:"description"`
}
