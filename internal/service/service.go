// Package service implements the per-user conversation engine: rate
// limiting, rolling history, the language-confirmation state machine, and
// orchestration of the external correction call.
package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/iprilbot/ipril/config"
	"github.com/iprilbot/ipril/domain"
	"github.com/iprilbot/ipril/internal/adapter/detector"
	"github.com/iprilbot/ipril/internal/adapter/llm"
	"github.com/iprilbot/ipril/internal/adapter/telegram"
	"github.com/iprilbot/ipril/internal/session"
	"github.com/iprilbot/ipril/internal/store"
)

// Service orchestrates message handling over the session store and the
// external collaborators.
type Service struct {
	sessions  *session.Store
	llm       llm.CompletionClient
	detector  detector.Detector
	messenger telegram.Messenger
	snapshot  store.SnapshotStore
	archive   store.Archive
	config    *config.Config

	// snapMu serializes snapshot capture and write as one unit, so a
	// stale language capture can never overwrite a newer one.
	snapMu sync.Mutex
}

// New creates a Service.
func New(sessions *session.Store, llmClient llm.CompletionClient, det detector.Detector, messenger telegram.Messenger, snapshot store.SnapshotStore, archive store.Archive, cfg *config.Config) *Service {
	return &Service{
		sessions:  sessions,
		llm:       llmClient,
		detector:  det,
		messenger: messenger,
		snapshot:  snapshot,
		archive:   archive,
		config:    cfg,
	}
}

// RestoreLanguages seeds the session store from the persisted snapshot.
// Called once at startup.
func (s *Service) RestoreLanguages() error {
	langs, err := s.snapshot.LoadAll()
	if err != nil {
		return err
	}
	s.sessions.RestoreLanguages(langs)
	return nil
}

// Stats summarizes live and archived state for the ops endpoint.
type Stats struct {
	Sessions         int   `json:"sessions"`
	ArchivedSessions int64 `json:"archived_sessions"`
	ArchivedMessages int64 `json:"archived_messages"`
}

// Stats returns current counters.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{Sessions: s.sessions.Len()}
	if s.archive != nil {
		archStats, err := s.archive.Stats(ctx)
		if err != nil {
			return stats, err
		}
		stats.ArchivedSessions = archStats.Sessions
		stats.ArchivedMessages = archStats.Messages
	}
	return stats, nil
}

// getOrCreate resolves the session, registering brand-new users with the
// archive and the snapshot. Must be called before taking the session lock.
func (s *Service) getOrCreate(ctx context.Context, userID int64) *session.Session {
	sess, created := s.sessions.GetOrCreate(userID)
	if created {
		if s.archive != nil {
			if err := s.archive.EnsureSession(ctx, userID); err != nil {
				log.Printf("WARN: failed to register user %d in archive: %v", userID, err)
			}
		}
		s.saveSnapshot()
	}
	return sess
}

// saveSnapshot persists the language mapping. Persistence failures are
// logged and never block the in-memory operation that triggered them.
func (s *Service) saveSnapshot() {
	s.snapMu.Lock()
	defer s.snapMu.Unlock()
	if err := s.snapshot.SaveAll(s.sessions.Languages()); err != nil {
		log.Printf("ERROR: failed to save language snapshot: %v", err)
	}
}

// archiveTurn records a turn for audit. Archive failure must not block
// handling.
func (s *Service) archiveTurn(ctx context.Context, userID int64, role domain.Role, text string) {
	if s.archive == nil {
		return
	}
	// Sessions restored from the language snapshot can predate the
	// current archive database, so the session row is ensured on every
	// write; the insert is idempotent.
	if err := s.archive.EnsureSession(ctx, userID); err != nil {
		log.Printf("WARN: failed to register user %d in archive: %v", userID, err)
		return
	}
	msg := &domain.ArchivedMessage{
		UserID:    userID,
		Role:      role,
		Content:   text,
		CreatedAt: time.Now(),
	}
	if err := s.archive.RecordMessage(ctx, msg); err != nil {
		log.Printf("WARN: failed to archive %s turn for user %d: %v", role, userID, err)
	}
}
