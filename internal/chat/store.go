package chat

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	perrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/storage"
)

// Store is the single owner of all chat sessions. Every mutation writes
// the full session list through the backend before returning, so a
// subsequent load observes the mutation. Mutations on sessions or
// messages that do not exist are silent no-ops returning false.
type Store struct {
	mu       sync.RWMutex
	backend  storage.Backend
	sessions []Session
	lastID   int64
	log      *slog.Logger
}

// Open builds a store from whatever the backend holds. It never fails:
// an absent blob means first run, and a corrupt blob is discarded; both
// cases synthesize the default single session and persist it.
func Open(backend storage.Backend) *Store {
	s := &Store{
		backend: backend,
		log:     logger.ComponentLogger("chat"),
	}

	data, err := backend.Load()
	switch {
	case err != nil:
		s.log.Warn("failed to load sessions, starting fresh", "error", err)
	case data == nil:
		s.log.Debug("no persisted sessions, starting fresh")
	default:
		var loaded []Session
		if err := json.Unmarshal(data, &loaded); err != nil {
			s.log.Warn("persisted sessions are corrupt, starting fresh", "error", err)
		} else {
			s.sessions = loaded
			s.lastID = maxMessageID(loaded)
			s.log.Debug("loaded sessions", "count", len(loaded))
			return s
		}
	}

	s.sessions = []Session{s.defaultSessionLocked()}
	s.persistLocked()
	return s
}

// maxMessageID seeds the monotonic guard so IDs keep ascending across
// restarts even if the wall clock went backwards.
func maxMessageID(sessions []Session) int64 {
	var max int64
	for _, sess := range sessions {
		for _, m := range sess.Messages {
			if m.ID > max {
				max = m.ID
			}
		}
	}
	return max
}

func (s *Store) defaultSessionLocked() Session {
	return Session{
		ID:       1,
		Title:    "Chat 1",
		Messages: []Message{{ID: s.nextMessageIDLocked(), From: SenderBot, Text: WelcomeText}},
	}
}

// Sessions returns a deep copy of all sessions in order.
func (s *Store) Sessions() []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Session, len(s.sessions))
	for i, sess := range s.sessions {
		out[i] = sess.clone()
	}
	return out
}

// Get returns a copy of the session with the given ID.
func (s *Store) Get(id int) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sess := range s.sessions {
		if sess.ID == id {
			return sess.clone(), true
		}
	}
	return Session{}, false
}

// Count returns the number of sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Create appends a new session seeded with the welcome message and
// returns its ID. IDs are dense, so the new ID is always max+1.
func (s *Store) Create() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	maxID := 0
	for _, sess := range s.sessions {
		if sess.ID > maxID {
			maxID = sess.ID
		}
	}
	id := maxID + 1

	s.sessions = append(s.sessions, Session{
		ID:       id,
		Title:    fmt.Sprintf("Chat %d", id),
		Messages: []Message{{ID: s.nextMessageIDLocked(), From: SenderBot, Text: WelcomeText}},
	})
	s.persistLocked()
	s.log.Info("created session", "sessionID", id)
	return id
}

// Delete removes the session with the given ID and re-indexes the
// remainder to keep IDs dense: positions 1..N in list order, titles
// rewritten to match. Message contents are untouched.
func (s *Store) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, sess := range s.sessions {
		if sess.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	s.sessions = append(s.sessions[:idx], s.sessions[idx+1:]...)
	for i := range s.sessions {
		s.sessions[i].ID = i + 1
		s.sessions[i].Title = fmt.Sprintf("Chat %d", i+1)
	}
	s.persistLocked()
	s.log.Info("deleted session", "sessionID", id, "remaining", len(s.sessions))
	return true
}

// Append adds a message to the session with the given ID.
func (s *Store) Append(sessionID int, msg Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.sessions {
		if s.sessions[i].ID == sessionID {
			s.sessions[i].Messages = append(s.sessions[i].Messages, msg)
			s.persistLocked()
			return true
		}
	}
	s.log.Debug("append to missing session ignored", "sessionID", sessionID)
	return false
}

// Clear removes every message from the session, leaving it empty.
func (s *Store) Clear(sessionID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.sessions {
		if s.sessions[i].ID == sessionID {
			s.sessions[i].Messages = []Message{}
			s.persistLocked()
			s.log.Info("cleared session", "sessionID", sessionID)
			return true
		}
	}
	return false
}

// DeleteMessage removes a single message from a session. It returns
// false when either the session or the message does not exist.
func (s *Store) DeleteMessage(sessionID int, messageID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.sessions {
		if s.sessions[i].ID != sessionID {
			continue
		}
		msgs := s.sessions[i].Messages
		for j := range msgs {
			if msgs[j].ID == messageID {
				s.sessions[i].Messages = append(msgs[:j], msgs[j+1:]...)
				s.persistLocked()
				return true
			}
		}
		return false
	}
	return false
}

// NewUserMessage builds a user message with a fresh ID. Blank or
// whitespace-only text is rejected before a message is constructed.
func (s *Store) NewUserMessage(text string) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, perrors.EmptyMessage()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return Message{ID: s.nextMessageIDLocked(), From: SenderUser, Text: text}, nil
}

// NewBotMessage builds a bot message with a fresh ID.
func (s *Store) NewBotMessage(text string) Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Message{ID: s.nextMessageIDLocked(), From: SenderBot, Text: text}
}

// nextMessageIDLocked returns the current UnixNano, bumped past the
// previous ID when the clock has not advanced. Caller holds mu.
func (s *Store) nextMessageIDLocked() int64 {
	id := time.Now().UnixNano()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// persistLocked writes the full session list through the backend.
// Failures are logged; in-memory state is never rolled back. Caller
// holds mu.
func (s *Store) persistLocked() {
	data, err := json.MarshalIndent(s.sessions, "", "  ")
	if err != nil {
		s.log.Error("failed to encode sessions", "error", err)
		return
	}
	if err := s.backend.Save(data); err != nil {
		s.log.Error("failed to persist sessions", "error", err)
	}
}
