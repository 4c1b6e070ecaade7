package app

import (
	"sync"
	"time"

	"homework_status_bot/internal/domain/homework"
)

// Session is the in-memory state of the polling loop. It is created at
// startup, mutated by every Poll and lost on exit.
type Session struct {
	mu           sync.Mutex
	cursor       int64
	lastStatus   homework.Status
	lastHomework string
	lastFault    string
	lastPollAt   time.Time
	polls        int
}

// Snapshot is a read-only copy of the session.
type Snapshot struct {
	Cursor       int64           `json:"cursor"`
	LastStatus   homework.Status `json:"last_status"`
	LastHomework string          `json:"last_homework"`
	LastFault    string          `json:"last_fault,omitempty"`
	LastPollAt   time.Time       `json:"last_poll_at"`
	Polls        int             `json:"polls"`
}

// NewSession starts the cursor at start.
func NewSession(start time.Time) *Session {
	return &Session{cursor: start.Unix()}
}

func (s *Session) Cursor() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

func (s *Session) advance(cursor int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = cursor
}

// recordStatus stores hw and reports whether its status differs from the last one seen.
func (s *Session) recordStatus(hw homework.Homework) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastStatus == hw.Status {
		return false
	}
	s.lastStatus = hw.Status
	s.lastHomework = hw.Name
	return true
}

// recordFault stores identity and reports whether it differs from the last fault seen.
func (s *Session) recordFault(identity string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastFault == identity {
		return false
	}
	s.lastFault = identity
	return true
}

func (s *Session) markPolled(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastPollAt = at
	s.polls++
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Cursor:       s.cursor,
		LastStatus:   s.lastStatus,
		LastHomework: s.lastHomework,
		LastFault:    s.lastFault,
		LastPollAt:   s.lastPollAt,
		Polls:        s.polls,
	}
}
