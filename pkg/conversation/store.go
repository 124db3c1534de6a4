// Package conversation holds the ordered transcript sent to the model as context.
package conversation

import (
	"errors"
	"strings"
	"sync"
)

// Role tags a message with its author.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ErrEmptyMessage is returned when a blank user message is appended.
var ErrEmptyMessage = errors.New("conversation: user message is empty")

// Message is a single role-tagged transcript entry.
type Message struct {
	Role    Role
	Content string
}

// Store is the transcript of one chat session. The first entry is always the
// system message set by the latest Reset. Entries are only ever appended.
type Store struct {
	mu       sync.RWMutex
	messages []Message
}

// New creates a store holding only the system prompt.
func New(systemPrompt string) *Store {
	s := &Store{}
	s.Reset(systemPrompt)
	return s
}

// Reset replaces the transcript with a single system message.
func (s *Store) Reset(systemPrompt string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = []Message{{Role: RoleSystem, Content: systemPrompt}}
}

// AppendUser appends a user message. Blank text is rejected.
func (s *Store) AppendUser(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	s.append(Message{Role: RoleUser, Content: text})
	return nil
}

// AppendAssistant appends an assistant message. Empty replies are kept.
func (s *Store) AppendAssistant(text string) {
	s.append(Message{Role: RoleAssistant, Content: text})
}

func (s *Store) append(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// Snapshot returns a copy of the transcript in conversation order.
func (s *Store) Snapshot() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Window returns the system message followed by the last n entries after it.
// n <= 0 returns the full snapshot.
func (s *Store) Window(n int) []Message {
	if n <= 0 {
		return s.Snapshot()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.messages) == 0 {
		return nil
	}
	rest := s.messages[1:]
	if len(rest) > n {
		rest = rest[len(rest)-n:]
	}
	out := make([]Message, 0, len(rest)+1)
	out = append(out, s.messages[0])
	out = append(out, rest...)
	return out
}

// Len returns the number of entries, including the system message.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Last returns the most recent entry.
func (s *Store) Last() (Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.messages) == 0 {
		return Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}
