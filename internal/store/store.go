// Package store persists session languages and archives conversation
// turns.
package store

import (
	"context"

	"github.com/iprilbot/ipril/domain"
)

// SnapshotStore persists the per-user language selection as a whole
// snapshot: read once at startup, written after every mutating command.
type SnapshotStore interface {
	// LoadAll returns the persisted user-to-language mapping.
	LoadAll() (map[int64]string, error)

	// SaveAll replaces the persisted mapping.
	SaveAll(langs map[int64]string) error
}

// ArchiveStats summarizes the conversation archive.
type ArchiveStats struct {
	Sessions int64 `json:"sessions"`
	Messages int64 `json:"messages"`
}

// Archive records conversation turns for audit. Writes must never block
// message handling; callers log failures and continue.
type Archive interface {
	// EnsureSession makes sure a session row exists for userID.
	EnsureSession(ctx context.Context, userID int64) error

	// RecordMessage appends one turn to the archive.
	RecordMessage(ctx context.Context, msg *domain.ArchivedMessage) error

	// Stats returns archive counters.
	Stats(ctx context.Context) (ArchiveStats, error)

	// Close releases the underlying storage.
	Close() error
}
