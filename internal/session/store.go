// Package session holds the per-chat state of in-progress expense
// entry flows. Sessions live in process memory only; their lifecycle
// is tied to process uptime.
package session

import (
	"sync"
	"time"
)

// State is the explicit position of a session in the entry flow.
// Completion is not a stored state: filling the last field submits the
// draft and tears the session down within the same event.
type State int

const (
	StateAwaitingName State = iota
	StateAwaitingAmount
	StateAwaitingDetails
)

func (s State) String() string {
	switch s {
	case StateAwaitingName:
		return "awaiting_name"
	case StateAwaitingAmount:
		return "awaiting_amount"
	case StateAwaitingDetails:
		return "awaiting_details"
	default:
		return "unknown"
	}
}

// Draft is the expense record under construction. Amount is kept as
// the raw reply text until submission.
type Draft struct {
	Name    string
	Amount  string
	Details string
}

// Session is one chat's in-progress expense entry.
type Session struct {
	ChatID    int64
	Cabinet   string
	State     State
	Draft     Draft
	UpdatedAt time.Time
}

// Store is a process-wide mapping from chat ID to session. A zero TTL
// disables expiry.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a fresh session for the chat, unconditionally
// overwriting any in-progress one: starting over always resets.
func (s *Store) Create(chatID int64, cabinet string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &Session{
		ChatID:    chatID,
		Cabinet:   cabinet,
		State:     StateAwaitingName,
		UpdatedAt: s.now(),
	}
	s.sessions[chatID] = sess
	return sess
}

// Get returns a copy of the chat's session. An expired session is
// removed and reported absent.
func (s *Store) Get(chatID int64) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		return Session{}, false
	}
	if s.expired(sess) {
		delete(s.sessions, chatID)
		return Session{}, false
	}
	return *sess, true
}

// Update applies one mutation to the chat's session under the store
// lock and refreshes its timestamp. It reports false when the session
// is absent or expired.
func (s *Store) Update(chatID int64, mutate func(*Session)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		return false
	}
	if s.expired(sess) {
		delete(s.sessions, chatID)
		return false
	}
	mutate(sess)
	sess.UpdatedAt = s.now()
	return true
}

// Delete removes the chat's session, if any.
func (s *Store) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}

// PurgeExpired drops every expired session and returns how many were
// removed. Abandoned flows would otherwise accumulate for the life of
// the process.
func (s *Store) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for chatID, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, chatID)
			removed++
		}
	}
	return removed
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) expired(sess *Session) bool {
	if s.ttl <= 0 {
		return false
	}
	return s.now().Sub(sess.UpdatedAt) > s.ttl
}
