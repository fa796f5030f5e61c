package chat

import (
	"sync"

	"churnmate/domain/chat"
	"churnmate/domain/core"
	"churnmate/internal/errors"
)

// SessionManager owns the live conversation sessions. Sessions are in-memory
// only and scoped to one logical user session, not process-wide globals;
// handlers look them up by id per interaction.
type SessionManager struct {
	systemPrompt string

	mu       sync.RWMutex
	sessions map[core.SessionID]*chat.Session
}

// NewSessionManager creates a session manager seeding new sessions with the
// given system prompt (empty means the default persona)
func NewSessionManager(systemPrompt string) *SessionManager {
	return &SessionManager{
		systemPrompt: systemPrompt,
		sessions:     make(map[core.SessionID]*chat.Session),
	}
}

// CreateSession starts a new conversation session
func (sm *SessionManager) CreateSession() *chat.Session {
	session := chat.NewSession(sm.systemPrompt)

	sm.mu.Lock()
	sm.sessions[session.ID] = session
	sm.mu.Unlock()

	return session
}

// GetSession retrieves a session by its string id
func (sm *SessionManager) GetSession(id string) (*chat.Session, error) {
	sessionID, err := core.ParseSessionID(id)
	if err != nil {
		return nil, errors.InvalidInput(err.Error())
	}

	sm.mu.RLock()
	session, ok := sm.sessions[sessionID]
	sm.mu.RUnlock()

	if !ok {
		return nil, errors.NotFound("session")
	}
	return session, nil
}

// GetOrCreateSession returns the session for id, or a fresh one when id is
// empty or unknown (the dashboard sends no id on its first turn)
func (sm *SessionManager) GetOrCreateSession(id string) *chat.Session {
	if id != "" {
		if session, err := sm.GetSession(id); err == nil {
			return session
		}
	}
	return sm.CreateSession()
}

// Count returns the number of live sessions
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
