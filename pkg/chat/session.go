// Package chat runs the conversation pipeline off the caller's goroutine and
// hands results back over an ordered channel.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"amdchat/pkg/ai"
	"amdchat/pkg/conversation"

	"github.com/google/uuid"
)

const (
	StatusReady   = "Подключено к DeepSeek API"
	StatusSending = "Отправка запроса..."
	StatusFailed  = "Ошибка подключения"
)

const eventBuffer = 16

var (
	// ErrBusy is returned when a send is already in flight.
	ErrBusy = errors.New("chat: a request is already in progress")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("chat: session closed")
)

// EventKind identifies what an Event carries.
type EventKind int

const (
	EventStatus EventKind = iota
	EventReply
	EventError
)

// Event is delivered to the presentation layer in the order it was produced.
// Every exchange yields one EventStatus followed by exactly one EventReply or
// EventError, whose Status is the status line to show afterwards.
type Event struct {
	Kind   EventKind
	Status string
	Reply  ai.DisplayReply
	Err    error
}

// Exchanger performs the network half of a send.
type Exchanger interface {
	Exchange(ctx context.Context, store *conversation.Store) (ai.DisplayReply, error)
}

// Session serializes sends against one transcript. At most one exchange is in
// flight; overlapping submissions are rejected with ErrBusy.
type Session struct {
	id           string
	client       Exchanger
	store        *conversation.Store
	systemPrompt string
	logger       *slog.Logger

	events chan Event
	busy   atomic.Bool

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSession creates a session over store. systemPrompt is used by Clear.
func NewSession(client Exchanger, store *conversation.Store, systemPrompt string, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		id:           id,
		client:       client,
		store:        store,
		systemPrompt: systemPrompt,
		logger:       logger.With("session_id", id),
		events:       make(chan Event, eventBuffer),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string {
	return s.id
}

// Events returns the delivery channel. It is closed by Close.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Store returns the underlying transcript.
func (s *Session) Store() *conversation.Store {
	return s.store
}

// Busy reports whether a send is in flight.
func (s *Session) Busy() bool {
	return s.busy.Load()
}

// Submit appends text as a user message and starts the exchange in the
// background. The user entry is in the store before Submit returns.
func (s *Session) Submit(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ai.ErrEmptyInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if !s.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}

	if err := s.store.AppendUser(text); err != nil {
		s.busy.Store(false)
		return err
	}

	s.logger.Debug("chat_submit", "length", len(text), "transcript_length", s.store.Len())

	s.wg.Add(1)
	go s.run()
	return nil
}

func (s *Session) run() {
	defer s.wg.Done()

	s.emit(Event{Kind: EventStatus, Status: StatusSending})
	reply, err := s.client.Exchange(s.ctx, s.store)

	// busy is cleared under mu so the next Submit cannot emit ahead of
	// this exchange's final event.
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.busy.Store(false)

	if err != nil {
		s.logger.Warn("chat_exchange_failed", "error", err)
		s.emit(Event{Kind: EventError, Err: err, Status: StatusFailed})
		return
	}
	s.emit(Event{Kind: EventReply, Reply: reply, Status: StatusReady})
}

func (s *Session) emit(ev Event) {
	select {
	case s.events <- ev:
	case <-s.ctx.Done():
	}
}

// Clear resets the transcript to the system prompt.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy.Load() {
		return ErrBusy
	}
	s.store.Reset(s.systemPrompt)
	s.logger.Info("chat_cleared")
	return nil
}

// Close abandons in-flight work and closes the event channel.
func (s *Session) Close() {
	s.cancel()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.wg.Wait()
	close(s.events)
}
