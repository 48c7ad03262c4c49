package session

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nurture-ai/network-agent/pkg/logger"
	"github.com/nurture-ai/network-agent/pkg/metrics"
)

// DefaultMaxSessions bounds the store when no capacity is configured.
const DefaultMaxSessions = 1000

// Store is a bounded, keyed collection of user sessions. It is a cache of
// conversational context, not a database: at capacity the least recently
// active session is dropped, and that user simply starts over. Evicted
// drafts are not recoverable.
//
// The store guards its own structural mutation with a coarse lock; the
// sessions it hands out are not synchronized.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*UserSession
	maxSessions int
	logger      *logger.Logger
}

// NewStore creates a session store holding at most maxSessions sessions.
// Non-positive capacities fall back to DefaultMaxSessions.
func NewStore(maxSessions int, log *logger.Logger) *Store {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	if log == nil {
		log = logger.Global()
	}
	return &Store{
		sessions:    make(map[string]*UserSession),
		maxSessions: maxSessions,
		logger:      log,
	}
}

// GetOrCreate returns the session for userID, creating it if absent. An
// existing session is returned unchanged; only session-mutating operations
// refresh its activity time. At capacity the least recently active session
// is evicted first, so the store never exceeds its bound.
func (st *Store) GetOrCreate(userID string) *UserSession {
	st.mu.Lock()
	defer st.mu.Unlock()

	if sess, ok := st.sessions[userID]; ok {
		return sess
	}

	if len(st.sessions) >= st.maxSessions {
		st.evictOldest()
	}

	sess := NewUserSession(userID)
	st.sessions[userID] = sess
	metrics.SetSessionsActive(len(st.sessions))
	return sess
}

// Get returns the session for userID without creating one.
func (st *Store) Get(userID string) (*UserSession, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[userID]
	return sess, ok
}

// Clear resets the session for userID if one exists. Safe to call
// speculatively for unknown users.
func (st *Store) Clear(userID string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if sess, ok := st.sessions[userID]; ok {
		sess.Clear()
	}
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Users lists the ids of live sessions in sorted order, for the diagnostics
// endpoint.
func (st *Store) Users() []string {
	st.mu.Lock()
	defer st.mu.Unlock()

	users := make([]string, 0, len(st.sessions))
	for id := range st.sessions {
		users = append(users, id)
	}
	sort.Strings(users)
	return users
}

// evictOldest removes the session with the minimum last-activity time, ties
// broken by map iteration order. Callers must hold st.mu.
func (st *Store) evictOldest() {
	var oldestID string
	var oldest time.Time

	for id, sess := range st.sessions {
		if oldestID == "" || sess.LastActivity.Before(oldest) {
			oldestID = id
			oldest = sess.LastActivity
		}
	}
	if oldestID == "" {
		return
	}

	delete(st.sessions, oldestID)
	metrics.IncrementSessionEvictions()
	st.logger.Info("session evicted",
		zap.String("user_id", oldestID),
		zap.Time("last_activity", oldest),
	)
}
