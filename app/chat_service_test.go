package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churnmate/adapters/llm"
	"churnmate/domain/chat"
	sessions "churnmate/internal/chat"
	"churnmate/internal/errors"
	"churnmate/internal/usage"
)

func chatFixture(mock *llm.MockChatClient) *ChatService {
	return NewChatService(mock, sessions.NewSessionManager(""), usage.NewService(), "mistralai/mistral-7b-instruct")
}

func TestSendMessageRoundTrip(t *testing.T) {
	mock := &llm.MockChatClient{Response: "Hi"}
	svc := chatFixture(mock)

	result, err := svc.SendMessage(context.Background(), "", "Hello")
	require.NoError(t, err)
	assert.Equal(t, "Hi", result.Reply)
	assert.NotEmpty(t, result.SessionID)

	history, err := svc.History(result.SessionID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, chat.Message{Role: chat.RoleUser, Content: "Hello"}, history[0])
	assert.Equal(t, chat.Message{Role: chat.RoleAssistant, Content: "Hi"}, history[1])

	// The gateway received the system message too.
	require.Len(t, mock.LastMessages, 2)
	assert.Equal(t, chat.RoleSystem, mock.LastMessages[0].Role)
}

func TestSendMessageContinuesSession(t *testing.T) {
	mock := &llm.MockChatClient{Response: "Sure"}
	svc := chatFixture(mock)

	first, err := svc.SendMessage(context.Background(), "", "Hello")
	require.NoError(t, err)
	second, err := svc.SendMessage(context.Background(), first.SessionID, "More detail please")
	require.NoError(t, err)

	assert.Equal(t, first.SessionID, second.SessionID)
	// system + first turn pair + the new user message
	assert.Len(t, mock.LastMessages, 4)

	history, err := svc.History(first.SessionID)
	require.NoError(t, err)
	assert.Len(t, history, 4)
}

func TestSendMessageFailureKeepsUserTurn(t *testing.T) {
	mock := &llm.MockChatClient{Error: &llm.ChatFailure{StatusCode: 500, Body: "boom"}}
	svc := chatFixture(mock)

	first, err := svc.SendMessage(context.Background(), "", "Hello")
	require.Error(t, err)
	assert.Nil(t, first)

	// The session was created and holds the user turn but no assistant turn.
	require.Len(t, mock.LastMessages, 2)
	assert.Equal(t, chat.RoleUser, mock.LastMessages[1].Role)

	var failure *llm.ChatFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, 500, failure.StatusCode)
}

func TestSendMessageRejectsEmptyMessage(t *testing.T) {
	svc := chatFixture(&llm.MockChatClient{})

	_, err := svc.SendMessage(context.Background(), "", "   ")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestHistoryUnknownSession(t *testing.T) {
	svc := chatFixture(&llm.MockChatClient{})

	_, err := svc.History("0191b9b2-0000-7000-8000-000000000000")
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}
