package ports

import (
	"context"

	"churnmate/domain/chat"
)

// UsageData represents raw usage data from LLM provider APIs
type UsageData struct {
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
	Model            string `json:"model"`
	Provider         string `json:"provider"`
}

// LLMResponse is the content of the first completion choice plus usage
// data when the provider reports it
type LLMResponse struct {
	Content string
	Usage   *UsageData
}

// ChatClient is the single outbound adapter to the remote chat-completion
// service. One synchronous call per invocation; no retry or backoff.
// A non-success status surfaces as *llm.ChatFailure, never a panic.
type ChatClient interface {
	ChatCompletion(ctx context.Context, model string, messages []chat.Message) (*LLMResponse, error)
}
