// Package store defines the session storage interface and implementations.
package store

import (
	"context"

	"github.com/melisasvr/Agile-Project-Consultant/internal/domain"
)

// Store persists sessions and their conversation history. Implementations
// must isolate sessions per identifier: no operation on one session may
// observe or mutate another.
type Store interface {
	// CreateSession installs a fresh session for the identifier. If the
	// session already exists it is returned unchanged; creation is
	// idempotent by effect and never error-raising for a known id.
	CreateSession(ctx context.Context, sessionID string) (*domain.Session, error)

	// GetSession returns the session, or nil when the id is unknown.
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)

	// GetOrCreateSession looks up the session, creating it when missing.
	GetOrCreateSession(ctx context.Context, sessionID string) (*domain.Session, error)

	// UpdateSession applies the mutator to the session record and persists
	// the result, returning the updated session. AssessmentComplete never
	// reverts to false once set, regardless of what the mutator does.
	UpdateSession(ctx context.Context, sessionID string, mutate func(*domain.Session) error) (*domain.Session, error)

	// AppendTurn appends one turn to the session's conversation history.
	// History is append-only and chronological.
	AppendTurn(ctx context.Context, turn *domain.Turn) error

	// History returns the session's turns in chronological order. A
	// positive limit returns only the most recent turns, still oldest
	// first; limit <= 0 returns everything.
	History(ctx context.Context, sessionID string, limit int) ([]domain.Turn, error)

	// Lifecycle
	Close() error
}
