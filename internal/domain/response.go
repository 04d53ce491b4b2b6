package domain

// ReplyKind discriminates the outbound response structures. Rendering is
// the hosting collaborator's job; the core only emits these DTOs.
type ReplyKind string

const (
	ReplyText        ReplyKind = "text"
	ReplyChoiceCard  ReplyKind = "choice_card"
	ReplyFormPanel   ReplyKind = "form_panel"
	ReplySectionCard ReplyKind = "section_card"
	ReplyFieldErrors ReplyKind = "field_errors"
)

// ActionButton is a labeled action offered to the user.
type ActionButton struct {
	Label  string     `json:"label"`
	Action ActionName `json:"action"`
}

// ChoiceCard offers a title and a list of labeled actions.
type ChoiceCard struct {
	Title   string         `json:"title"`
	Buttons []ActionButton `json:"buttons"`
}

// FormField binds one panel field to a catalog question.
type FormField struct {
	QuestionID string     `json:"question_id"`
	Prompt     string     `json:"question"`
	Kind       AnswerKind `json:"type"`
	Options    []string   `json:"options,omitempty"`
}

// FormPanel renders the question catalog as a submittable form.
type FormPanel struct {
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Fields       []FormField `json:"fields"`
	SubmitLabel  string      `json:"submit_label"`
	SubmitAction ActionName  `json:"submit_action"`
}

// CardSection is one named text section of a sectioned card.
type CardSection struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// SectionCard is a titled card with named text sections and actions.
type SectionCard struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Sections    []CardSection  `json:"sections,omitempty"`
	Buttons     []ActionButton `json:"buttons,omitempty"`
}

// Reply is one outbound response structure. Exactly one field matching
// Kind is set.
type Reply struct {
	Kind        ReplyKind    `json:"kind"`
	Text        string       `json:"text,omitempty"`
	Choice      *ChoiceCard  `json:"choice,omitempty"`
	Form        *FormPanel   `json:"form,omitempty"`
	Card        *SectionCard `json:"card,omitempty"`
	FieldErrors []FieldError `json:"field_errors,omitempty"`
}

// TextReply builds a plain text reply.
func TextReply(text string) Reply {
	return Reply{Kind: ReplyText, Text: text}
}
