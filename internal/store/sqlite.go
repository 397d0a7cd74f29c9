package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/iprilbot/ipril/domain"
)

// SQLiteArchive implements Archive using SQLite.
type SQLiteArchive struct {
	db *sql.DB
}

// Ensure SQLiteArchive implements Archive interface.
var _ Archive = (*SQLiteArchive)(nil)

// NewSQLiteArchive creates a new SQLite archive.
func NewSQLiteArchive(dsn string) (*SQLiteArchive, error) {
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

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	archive := &SQLiteArchive{db: db}
	if err := archive.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return archive, nil
}

// migrate runs database migrations.
func (a *SQLiteArchive) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			user_id INTEGER PRIMARY KEY,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			message_id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES sessions(user_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_user ON messages(user_id, created_at)`,
	}

	for _, migration := range migrations {
		if _, err := a.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// EnsureSession makes sure a session row exists for userID.
func (a *SQLiteArchive) EnsureSession(ctx context.Context, userID int64) error {
	_, err := a.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO sessions (user_id, created_at) VALUES (?, ?)",
		userID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to ensure session for user %d: %w", userID, err)
	}
	return nil
}

// RecordMessage appends one turn to the archive. A missing message ID is
// assigned here.
func (a *SQLiteArchive) RecordMessage(ctx context.Context, msg *domain.ArchivedMessage) error {
	if msg.MessageID == "" {
		msg.MessageID = "msg_" + uuid.New().String()[:8]
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	_, err := a.db.ExecContext(ctx,
		"INSERT INTO messages (message_id, user_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)",
		msg.MessageID, msg.UserID, string(msg.Role), msg.Content, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert message %s: %w", msg.MessageID, err)
	}
	return nil
}

// Stats returns archive counters.
func (a *SQLiteArchive) Stats(ctx context.Context) (ArchiveStats, error) {
	var stats ArchiveStats
	if err := a.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sessions").Scan(&stats.Sessions); err != nil {
		return stats, fmt.Errorf("failed to count sessions: %w", err)
	}
	if err := a.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM messages").Scan(&stats.Messages); err != nil {
		return stats, fmt.Errorf("failed to count messages: %w", err)
	}
	return stats, nil
}

// Close releases the underlying storage.
func (a *SQLiteArchive) Close() error {
	return a.db.Close()
}
