package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iprilbot/ipril/internal/store"
)

func TestSlowCompletionDoesNotBlockOtherUsers(t *testing.T) {
	env := newTestEnv()
	block := newBlockingLLM()
	env.svc.llm = block

	firstDone := make(chan struct{})
	go func() {
		env.svc.HandleMessage(context.Background(), 1, 1, "He go to school", time.Now())
		close(firstDone)
	}()
	<-block.started

	// User 2's language change persists the snapshot; it must not wait
	// for user 1's in-flight completion.
	otherDone := make(chan struct{})
	go func() {
		env.svc.HandleCommand(context.Background(), 2, 2, "setlang", "es")
		close(otherDone)
	}()

	select {
	case <-otherDone:
	case <-time.After(2 * time.Second):
		t.Fatal("another user's command blocked behind an in-flight completion")
	}
	assert.Equal(t, "es", env.snap.langs[2])

	close(block.release)
	<-firstDone
}

func TestArchiveRecordsTurnsForRestoredUser(t *testing.T) {
	env := newTestEnv()
	archive, err := store.NewSQLiteArchive(":memory:")
	require.NoError(t, err)
	defer archive.Close()
	env.svc.archive = archive
	env.det.code = "fr"

	// A restored session exists before its first message, so the archive
	// has no row for it yet.
	env.snap.langs = map[int64]string{7: "fr"}
	require.NoError(t, env.svc.RestoreLanguages())

	env.svc.HandleMessage(context.Background(), 7, 7, "Bonjour tout le monde", time.Now())

	stats, err := archive.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Sessions)
	assert.Equal(t, int64(2), stats.Messages)
}

func TestConcurrentLanguageChangesAllPersisted(t *testing.T) {
	env := newTestEnv()
	codes := []string{"en", "es", "fr", "de", "it", "ru"}

	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := int64(i + 1)
			env.svc.HandleCommand(context.Background(), userID, userID, "setlang", codes[i%len(codes)])
		}(i)
	}
	wg.Wait()

	// The last write captured the complete mapping; no stale capture
	// overwrote a newer one.
	langs, err := env.snap.LoadAll()
	require.NoError(t, err)
	for i := 0; i < 12; i++ {
		assert.Equal(t, codes[i%len(codes)], langs[int64(i+1)], "user %d", i+1)
	}
}
