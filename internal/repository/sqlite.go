package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/melisasvr/Agile-Project-Consultant/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			assessment_complete INTEGER NOT NULL DEFAULT 0,
			project_context TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			last_active_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS turns (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			turn_id TEXT NOT NULL UNIQUE,
			session_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (session_id) REFERENCES sessions(session_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_turns_session ON turns(session_id, seq)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateSession installs a fresh session, or returns the existing one.
func (s *SQLiteStore) CreateSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	now := time.Now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (session_id, assessment_complete, project_context, created_at, last_active_at)
		 VALUES (?, 0, '{}', ?, ?)
		 ON CONFLICT(session_id) DO NOTHING`,
		sessionID, now, now)
	if err != nil {
		return nil, err
	}
	return s.GetSession(ctx, sessionID)
}

// GetSession retrieves a session by ID, nil when unknown.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT session_id, assessment_complete, project_context, created_at, last_active_at
		 FROM sessions WHERE session_id = ?`, sessionID)
	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// GetOrCreateSession looks up the session, creating it when missing.
func (s *SQLiteStore) GetOrCreateSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil || sess != nil {
		return sess, err
	}
	return s.CreateSession(ctx, sessionID)
}

// UpdateSession applies the mutator inside a transaction.
func (s *SQLiteStore) UpdateSession(ctx context.Context, sessionID string, mutate func(*domain.Session) error) (*domain.Session, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT session_id, assessment_complete, project_context, created_at, last_active_at
		 FROM sessions WHERE session_id = ?`, sessionID)
	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}
	if err != nil {
		return nil, err
	}

	wasComplete := sess.AssessmentComplete
	if err := mutate(sess); err != nil {
		return nil, err
	}
	if wasComplete {
		sess.AssessmentComplete = true
	}
	sess.LastActiveAt = time.Now()

	contextJSON, err := json.Marshal(sess.ProjectContext)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal project context: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE sessions SET assessment_complete = ?, project_context = ?, last_active_at = ? WHERE session_id = ?`,
		boolToInt(sess.AssessmentComplete), string(contextJSON), sess.LastActiveAt, sessionID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return sess, nil
}

// AppendTurn appends one turn to the session's history.
func (s *SQLiteStore) AppendTurn(ctx context.Context, turn *domain.Turn) error {
	if turn.TurnID == "" {
		turn.TurnID = "turn_" + uuid.New().String()[:8]
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO turns (turn_id, session_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		turn.TurnID, turn.SessionID, string(turn.Role), turn.Content, turn.CreatedAt)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE sessions SET last_active_at = ? WHERE session_id = ?`, time.Now(), turn.SessionID)
	return err
}

// History returns the session's turns in chronological order.
func (s *SQLiteStore) History(ctx context.Context, sessionID string, limit int) ([]domain.Turn, error) {
	query := `SELECT turn_id, session_id, role, content, created_at FROM turns WHERE session_id = ? ORDER BY seq ASC`
	args := []interface{}{sessionID}
	if limit > 0 {
		// Most recent turns, still returned oldest first.
		query = `SELECT turn_id, session_id, role, content, created_at FROM (
			SELECT seq, turn_id, session_id, role, content, created_at FROM turns
			WHERE session_id = ? ORDER BY seq DESC LIMIT ?
		) ORDER BY seq ASC`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []domain.Turn
	for rows.Next() {
		var t domain.Turn
		var role string
		if err := rows.Scan(&t.TurnID, &t.SessionID, &role, &t.Content, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.Role = domain.Role(role)
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

func scanSession(row *sql.Row) (*domain.Session, error) {
	var sess domain.Session
	var complete int
	var contextJSON sql.NullString
	if err := row.Scan(&sess.SessionID, &complete, &contextJSON, &sess.CreatedAt, &sess.LastActiveAt); err != nil {
		return nil, err
	}
	sess.AssessmentComplete = complete != 0
	sess.ProjectContext = domain.ProjectContext{}
	if contextJSON.Valid && contextJSON.String != "" {
		if err := json.Unmarshal([]byte(contextJSON.String), &sess.ProjectContext); err != nil {
			return nil, fmt.Errorf("failed to unmarshal project context: %w", err)
		}
	}
	return &sess, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
