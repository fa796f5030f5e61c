package app

import (
	"context"
	"strings"

	"churnmate/domain/chat"
	"churnmate/internal"
	sessions "churnmate/internal/chat"
	"churnmate/internal/errors"
	"churnmate/internal/usage"
	"churnmate/ports"
)

// ChatService drives user-initiated conversation turns through the gateway.
// One synchronous outbound call per turn; a failed call appends nothing, so
// the preceding user turn stays and the session remains usable.
type ChatService struct {
	chatClient   ports.ChatClient
	sessions     *sessions.SessionManager
	usageService *usage.Service
	model        string
	log          *internal.Logger
}

// TurnResult is one completed conversation turn
type TurnResult struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

// NewChatService creates a chat service
func NewChatService(chatClient ports.ChatClient, sessionManager *sessions.SessionManager, usageService *usage.Service, model string) *ChatService {
	return &ChatService{
		chatClient:   chatClient,
		sessions:     sessionManager,
		usageService: usageService,
		model:        model,
		log:          internal.NewLogger("ChatService"),
	}
}

// SendMessage appends the user turn, sends the full transcript to the
// remote assistant, and appends the reply on success. An empty sessionID
// starts a new session.
func (s *ChatService) SendMessage(ctx context.Context, sessionID, message string) (*TurnResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, errors.InvalidInput("message is empty")
	}

	session := s.sessions.GetOrCreateSession(sessionID)
	session.AppendUser(message)

	resp, err := s.chatClient.ChatCompletion(ctx, s.model, session.Transcript(true))
	if err != nil {
		// The user turn stays; the caller may re-send manually.
		s.log.Warn("chat turn failed for session %s: %v", session.ID, err)
		return nil, err
	}

	session.AppendAssistant(resp.Content)
	s.usageService.RecordUsage("chat", resp.Usage)

	return &TurnResult{
		SessionID: session.ID.String(),
		Reply:     resp.Content,
	}, nil
}

// History returns the displayable transcript (system message excluded)
func (s *ChatService) History(sessionID string) ([]chat.Message, error) {
	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	return session.Transcript(false), nil
}
