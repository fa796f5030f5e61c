package llm

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"churnmate/domain/chat"
)

// TestLiveChatCompletion performs a live fire test against OpenRouter.
// Skipped unless OPENROUTER_API_KEY is set (directly or via a .env file at
// the repo root).
func TestLiveChatCompletion(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		_ = godotenv.Load(".env")
	}

	key := os.Getenv("OPENROUTER_API_KEY")
	if key == "" {
		t.Skip("Skipping live test: OPENROUTER_API_KEY not set")
	}

	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "mistralai/mistral-7b-instruct"
	}

	client, err := NewChatClient(Config{APIKey: key, Timeout: 60 * time.Second})
	require.NoError(t, err)

	resp, err := client.ChatCompletion(context.Background(), model, []chat.Message{
		chat.NewSystemMessage(chat.DefaultSystemPrompt),
		chat.NewUserMessage("My churn rate is 12.34%. What advice can you give to reduce churn and improve customer retention?"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Content)
	t.Logf("assistant reply: %s", resp.Content)
}
