package store

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/melisasvr/Agile-Project-Consultant/internal/domain"
)

// MemoryStore implements Store with an in-process table. A zero TTL keeps
// sessions for the life of the process; a positive TTL evicts sessions idle
// longer than the TTL so the table stays bounded.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memRecord

	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

type memRecord struct {
	session domain.Session
	turns   []domain.Turn
}

// NewMemoryStore creates an in-memory store. When ttl > 0 a janitor
// goroutine sweeps idle sessions until Close is called.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]*memRecord),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	if ttl > 0 {
		go s.janitor()
	}
	return s
}

func (s *MemoryStore) janitor() {
	interval := s.ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := s.evictIdle(time.Now()); n > 0 {
				log.Printf("Evicted %d idle sessions", n)
			}
		case <-s.stop:
			return
		}
	}
}

// evictIdle drops sessions whose last activity is older than the TTL and
// returns how many were removed.
func (s *MemoryStore) evictIdle(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for id, rec := range s.sessions {
		if now.Sub(rec.session.LastActiveAt) > s.ttl {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Close stops the janitor. The table itself needs no teardown.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	return nil
}

// CreateSession installs a fresh session, or returns the existing one.
func (s *MemoryStore) CreateSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.sessions[sessionID]; ok {
		return cloneSession(&rec.session), nil
	}
	now := time.Now()
	rec := &memRecord{session: domain.Session{
		SessionID:      sessionID,
		ProjectContext: domain.ProjectContext{},
		CreatedAt:      now,
		LastActiveAt:   now,
	}}
	s.sessions[sessionID] = rec
	return cloneSession(&rec.session), nil
}

// GetSession retrieves a session by ID, nil when unknown.
func (s *MemoryStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return cloneSession(&rec.session), nil
}

// GetOrCreateSession looks up the session, creating it when missing.
func (s *MemoryStore) GetOrCreateSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sess, err := s.GetSession(ctx, sessionID); err != nil || sess != nil {
		return sess, err
	}
	return s.CreateSession(ctx, sessionID)
}

// UpdateSession applies the mutator under the store lock.
func (s *MemoryStore) UpdateSession(ctx context.Context, sessionID string, mutate func(*domain.Session) error) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}
	// Mutate a copy so a failing mutator leaves the record untouched.
	next := *cloneSession(&rec.session)
	if err := mutate(&next); err != nil {
		return nil, err
	}
	if rec.session.AssessmentComplete {
		next.AssessmentComplete = true
	}
	next.LastActiveAt = time.Now()
	rec.session = next
	return cloneSession(&rec.session), nil
}

// AppendTurn appends one turn to the session's history.
func (s *MemoryStore) AppendTurn(ctx context.Context, turn *domain.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[turn.SessionID]
	if !ok {
		return fmt.Errorf("session %s not found", turn.SessionID)
	}
	rec.turns = append(rec.turns, *turn)
	rec.session.LastActiveAt = time.Now()
	return nil
}

// History returns the session's turns in chronological order.
func (s *MemoryStore) History(ctx context.Context, sessionID string, limit int) ([]domain.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	turns := rec.turns
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	out := make([]domain.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

func cloneSession(sess *domain.Session) *domain.Session {
	out := *sess
	out.ProjectContext = sess.ProjectContext.Clone()
	return &out
}
