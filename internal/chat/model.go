// Package chat holds the session data model and the session store.
//
// A Store owns the ordered list of sessions and persists the complete
// list through a storage backend on every mutation, so readers always
// see exactly what is on disk. Session IDs are dense (1..N) and are
// re-assigned after deletion; message IDs come from a high-resolution
// clock and are unique within the store's lifetime.
package chat

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser Sender = "you"
	SenderBot  Sender = "bot"
)

// WelcomeText is the bot message seeded into every new session.
const WelcomeText = "Hello! How can I help you today?"

// Message is a single chat message.
type Message struct {
	ID   int64  `json:"id"`
	From Sender `json:"from"`
	Text string `json:"text"`
}

// Session is an ordered list of messages with a dense numeric ID.
// The title always tracks the ID as "Chat N".
type Session struct {
	ID       int       `json:"id"`
	Title    string    `json:"title"`
	Messages []Message `json:"messages"`
}

func (s Session) clone() Session {
	out := s
	out.Messages = make([]Message, len(s.Messages))
	copy(out.Messages, s.Messages)
	return out
}
