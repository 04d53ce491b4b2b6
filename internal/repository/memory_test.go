package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/melisasvr/Agile-Project-Consultant/internal/domain"
)

func TestMemoryStoreSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	defer s.Close()

	sess, err := s.CreateSession(ctx, "s1")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if sess.SessionID != "s1" || sess.AssessmentComplete {
		t.Fatalf("unexpected session: %+v", sess)
	}

	// Creating again returns the existing session.
	again, err := s.CreateSession(ctx, "s1")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if !again.CreatedAt.Equal(sess.CreatedAt) {
		t.Fatalf("expected idempotent create, got new session")
	}

	got, err := s.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got == nil {
		t.Fatalf("expected session")
	}

	missing, err := s.GetSession(ctx, "nope")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown session, got %+v", missing)
	}
}

func TestMemoryStoreUpdateSession(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	defer s.Close()

	if _, err := s.CreateSession(ctx, "s1"); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	updated, err := s.UpdateSession(ctx, "s1", func(sess *domain.Session) error {
		sess.ProjectContext["team_size"] = domain.Answer{Value: "1-5 members"}
		sess.AssessmentComplete = true
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateSession failed: %v", err)
	}
	if !updated.AssessmentComplete || updated.ProjectContext.TeamSize() != "1-5 members" {
		t.Fatalf("unexpected session: %+v", updated)
	}

	// The complete flag never reverts.
	updated, err = s.UpdateSession(ctx, "s1", func(sess *domain.Session) error {
		sess.AssessmentComplete = false
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateSession failed: %v", err)
	}
	if !updated.AssessmentComplete {
		t.Fatalf("assessment_complete reverted")
	}

	// A failing mutator leaves the session untouched.
	if _, err := s.UpdateSession(ctx, "s1", func(sess *domain.Session) error {
		sess.ProjectContext["team_size"] = domain.Answer{Value: "13+ members"}
		return fmt.Errorf("boom")
	}); err == nil {
		t.Fatalf("expected mutator error")
	}
	got, err := s.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.ProjectContext.TeamSize() != "1-5 members" {
		t.Fatalf("failed mutation leaked: %+v", got.ProjectContext)
	}

	if _, err := s.UpdateSession(ctx, "nope", func(sess *domain.Session) error { return nil }); err == nil {
		t.Fatalf("expected error for unknown session")
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	defer s.Close()

	if _, err := s.CreateSession(ctx, "s1"); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	got, err := s.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	got.ProjectContext["team_size"] = domain.Answer{Value: "13+ members"}

	reread, err := s.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if reread.ProjectContext.TeamSize() != "" {
		t.Fatalf("caller mutation leaked into the store")
	}
}

func TestMemoryStoreHistory(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	defer s.Close()

	if _, err := s.CreateSession(ctx, "s1"); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if _, err := s.CreateSession(ctx, "s2"); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		turn := &domain.Turn{
			TurnID:    fmt.Sprintf("t%d", i),
			SessionID: "s1",
			Role:      domain.RoleUser,
			Content:   fmt.Sprintf("message %d", i),
			CreatedAt: time.Now(),
		}
		if err := s.AppendTurn(ctx, turn); err != nil {
			t.Fatalf("AppendTurn failed: %v", err)
		}
	}

	turns, err := s.History(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(turns) != 5 {
		t.Fatalf("expected 5 turns, got %d", len(turns))
	}
	for i, turn := range turns {
		if turn.TurnID != fmt.Sprintf("t%d", i) {
			t.Fatalf("history out of order at %d: %+v", i, turn)
		}
	}

	// A positive limit keeps the most recent turns, still oldest first.
	turns, err = s.History(ctx, "s1", 2)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(turns) != 2 || turns[0].TurnID != "t3" || turns[1].TurnID != "t4" {
		t.Fatalf("unexpected limited history: %+v", turns)
	}

	// Sessions are isolated.
	turns, err = s.History(ctx, "s2", 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(turns) != 0 {
		t.Fatalf("expected empty history for s2, got %d turns", len(turns))
	}

	if err := s.AppendTurn(ctx, &domain.Turn{TurnID: "tx", SessionID: "nope"}); err == nil {
		t.Fatalf("expected error for unknown session")
	}
}

func TestMemoryStoreEvictIdle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)
	defer s.Close()

	if _, err := s.CreateSession(ctx, "s1"); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if _, err := s.CreateSession(ctx, "s2"); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	// Nothing is idle yet.
	if n := s.evictIdle(time.Now()); n != 0 {
		t.Fatalf("expected no evictions, got %d", n)
	}

	// Touch s2 so only s1 crosses the TTL.
	if _, err := s.UpdateSession(ctx, "s2", func(sess *domain.Session) error { return nil }); err != nil {
		t.Fatalf("UpdateSession failed: %v", err)
	}

	s.mu.Lock()
	s.sessions["s1"].session.LastActiveAt = time.Now().Add(-2 * time.Hour)
	s.mu.Unlock()

	if n := s.evictIdle(time.Now()); n != 1 {
		t.Fatalf("expected 1 eviction, got %d", n)
	}
	gone, err := s.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if gone != nil {
		t.Fatalf("expected s1 evicted")
	}
	kept, err := s.GetSession(ctx, "s2")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if kept == nil {
		t.Fatalf("expected s2 kept")
	}
}
