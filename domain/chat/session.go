package chat

import (
	"sync"

	"churnmate/domain/core"
)

// Session is an append-only conversation transcript. The first message is
// always the system persona; later turns are appended in the order they were
// produced. Strict user/assistant alternation is not enforced: a user may
// send again after a failed assistant call.
type Session struct {
	ID        core.SessionID `json:"id"`
	StartedAt core.Timestamp `json:"started_at"`

	messages []Message
	mu       sync.RWMutex
}

// NewSession creates a session seeded with the given system prompt.
// An empty prompt falls back to DefaultSystemPrompt.
func NewSession(systemPrompt string) *Session {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	return &Session{
		ID:        core.SessionID(core.NewID()),
		StartedAt: core.Now(),
		messages:  []Message{NewSystemMessage(systemPrompt)},
	}
}

// AppendUser adds a user turn
func (s *Session) AppendUser(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, NewUserMessage(content))
}

// AppendAssistant adds an assistant turn
func (s *Session) AppendAssistant(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, NewAssistantMessage(content))
}

// Transcript returns a copy of the ordered messages. The interactive view
// passes includeSystem=false; the gateway needs the full sequence.
func (s *Session) Transcript(includeSystem bool) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages
	if !includeSystem && len(msgs) > 0 && msgs[0].Role == RoleSystem {
		msgs = msgs[1:]
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

// Len returns the number of messages including the system message
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}
