package session

import (
	"sync"

	"github.com/iprilbot/ipril/domain"
)

// Store owns the mapping from Telegram user ID to session state. Sessions
// are created on first contact and live for the process lifetime. The
// store also keeps its own copy of each user's language: snapshotting
// reads that copy under the store mutex alone, so persisting languages
// never waits on a session that is busy with a slow completion call.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	langs    map[int64]string
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		langs:    make(map[int64]string),
	}
}

// GetOrCreate returns the session for userID, creating it with the default
// language on first contact. The second result reports whether the session
// was just created.
func (st *Store) GetOrCreate(userID int64) (*Session, bool) {
	st.mu.RLock()
	sess, ok := st.sessions[userID]
	st.mu.RUnlock()
	if ok {
		return sess, false
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if sess, ok := st.sessions[userID]; ok {
		return sess, false
	}
	sess = newSession(userID)
	st.sessions[userID] = sess
	st.langs[userID] = sess.Language
	return sess, true
}

// SetLanguage updates the store's language record for userID. The
// session's own Language field is guarded by the session lock; callers
// changing a language update both.
func (st *Store) SetLanguage(userID int64, code string) {
	st.mu.Lock()
	st.langs[userID] = code
	st.mu.Unlock()
}

// Languages returns a snapshot of every user's configured language,
// suitable for the persistence store. Only store state is read; no
// session lock is taken.
func (st *Store) Languages() map[int64]string {
	st.mu.RLock()
	defer st.mu.RUnlock()

	langs := make(map[int64]string, len(st.langs))
	for id, code := range st.langs {
		langs[id] = code
	}
	return langs
}

// RestoreLanguages seeds sessions from a persisted language snapshot.
// Entries with unsupported codes are ignored, as are users who already
// have a live session: live state is newer than the snapshot.
func (st *Store) RestoreLanguages(langs map[int64]string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for id, code := range langs {
		if !domain.IsSupported(code) {
			continue
		}
		if _, ok := st.sessions[id]; ok {
			continue
		}
		sess := newSession(id)
		sess.Language = code
		st.sessions[id] = sess
		st.langs[id] = code
	}
}

// Len returns the number of sessions seen so far.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
