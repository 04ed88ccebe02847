// Package conversation sequences user submissions and gateway calls into
// an ordered, append-only message log. A session is a small state
// machine: Idle until a submission starts a generation, Generating while
// exactly one call is outstanding, Idle again once it settles.
package conversation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vibespecs/vibespecs/internal/prd"
)

// ErrGenerationInFlight is returned when Submit is called while a
// generation is already outstanding. Submissions are rejected rather than
// queued; two concurrent generations must never interleave on one log.
var ErrGenerationInFlight = errors.New("a generation is already in flight")

// State is the session's generation state.
type State int

const (
	StateIdle State = iota
	StateGenerating
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGenerating:
		return "generating"
	default:
		return "unknown"
	}
}

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the conversation log. Messages are never
// mutated after creation. An assistant message owns the PRD it carries.
type Message struct {
	ID        string        `json:"id"`
	Role      Role          `json:"role"`
	Content   string        `json:"content"`
	PRD       *prd.Document `json:"prd,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// Generator produces a PRD for an idea. Satisfied by *gateway.Client;
// tests substitute a stub.
type Generator interface {
	Generate(ctx context.Context, idea string, advanced bool) (*prd.Document, error)
}

// Session holds one conversation's message log and enforces the
// one-in-flight-generation invariant. Safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	state     State
	messages  []Message
	generator Generator
	cancel    context.CancelFunc
}

// NewSession creates an idle session backed by the given generator.
func NewSession(generator Generator) *Session {
	return &Session{generator: generator}
}

// State returns the current generation state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Messages returns a copy of the message log in append order.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Submit records the user's idea and runs one generation. The user
// message is appended immediately and stays in the log even if the
// generation fails, so the conversation may contain an unanswered turn.
// On success the assistant message carrying the PRD is appended and
// returned. Only valid from Idle; concurrent submissions get
// ErrGenerationInFlight.
func (s *Session) Submit(ctx context.Context, idea string, advanced bool) (*Message, error) {
	s.mu.Lock()
	if s.state == StateGenerating {
		s.mu.Unlock()
		return nil, ErrGenerationInFlight
	}
	s.state = StateGenerating

	s.messages = append(s.messages, Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   idea,
		CreatedAt: time.Now(),
	})

	genCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	doc, err := s.generator.Generate(genCtx, idea, advanced)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	s.cancel = nil

	if err != nil {
		// No assistant message on failure; the error is the caller's to
		// surface.
		return nil, err
	}

	assistant := Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Content:   "Here is your Product Requirements Document.",
		PRD:       doc,
		CreatedAt: time.Now(),
	}
	s.messages = append(s.messages, assistant)
	return &assistant, nil
}

// Cancel aborts the in-flight generation, if any. The pending result is
// abandoned and the session settles back to Idle; the submitted user
// message remains in the log.
func (s *Session) Cancel() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
