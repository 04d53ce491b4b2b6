// Package domain defines the core domain models for the consultant.
package domain

// MethodologyID identifies one of the supported agile methodologies.
// The set is closed: no dynamic addition.
type MethodologyID string

const (
	MethodologyScrum  MethodologyID = "scrum"
	MethodologyKanban MethodologyID = "kanban"
	MethodologyXP     MethodologyID = "xp"
	MethodologyLean   MethodologyID = "lean"
)

// MethodologyIDs lists every supported methodology in catalog order.
var MethodologyIDs = []MethodologyID{
	MethodologyScrum,
	MethodologyKanban,
	MethodologyXP,
	MethodologyLean,
}

// AnswerKind represents the kind of answer a question accepts.
type AnswerKind string

const (
	AnswerText         AnswerKind = "text"
	AnswerSingleChoice AnswerKind = "select"
	AnswerMultiChoice  AnswerKind = "multi-select"
)

// Role represents who authored a conversation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// EventKind represents the kind of an inbound event.
type EventKind string

const (
	EventWelcome EventKind = "welcome"
	EventAction  EventKind = "action"
	EventMessage EventKind = "message"
)

// ActionName identifies a named action the client can trigger.
type ActionName string

const (
	ActionStartAssessment     ActionName = "start_assessment"
	ActionSubmitAssessment    ActionName = "submit_assessment"
	ActionShowSteps           ActionName = "show_implementation_steps"
	ActionAskQuestion         ActionName = "ask_question"
	ActionContinueChat        ActionName = "continue_chat"
	ActionMethodologySpecific ActionName = "methodology_specific"
	ActionGeneralPractices    ActionName = "general_practices"
)

// NoMethodology is the placeholder for teams without a prior methodology.
// It never equals a real methodology identifier.
const NoMethodology = "None/Traditional"
