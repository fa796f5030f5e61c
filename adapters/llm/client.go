package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"churnmate/domain/chat"
	"churnmate/ports"
)

// Config holds the settings the gateway needs to reach the remote
// chat-completion endpoint
type Config struct {
	APIKey  string
	BaseURL string
	// Timeout of zero leaves the transport's default in place.
	Timeout time.Duration
}

// NewChatClient creates a chat-completion client from config
func NewChatClient(config Config) (ports.ChatClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("missing OpenRouter API key")
	}

	baseURL := strings.TrimSpace(config.BaseURL)
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}

	return &OpenRouterClient{
		APIKey:  config.APIKey,
		BaseURL: baseURL,
		Timeout: config.Timeout,
	}, nil
}

// ChatFailure is a non-success response from the remote endpoint. It carries
// the original status code and raw body for diagnostic display; the caller
// decides whether to surface it as a warning or hard error.
type ChatFailure struct {
	StatusCode int
	Body       string
}

func (e *ChatFailure) Error() string {
	return fmt.Sprintf("chat completion failed with http %d: %s", e.StatusCode, e.Body)
}

// OpenRouterClient implements ports.ChatClient against an
// OpenRouter-compatible chat-completions endpoint
type OpenRouterClient struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

func (c *OpenRouterClient) ChatCompletion(ctx context.Context, model string, messages []chat.Message) (*ports.LLMResponse, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("missing model identifier")
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("no messages to send")
	}

	type msg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type reqBody struct {
		Model    string `json:"model"`
		Messages []msg  `json:"messages"`
	}
	body := reqBody{Model: model, Messages: make([]msg, 0, len(messages))}
	for _, m := range messages {
		body.Messages = append(body.Messages, msg{Role: string(m.Role), Content: m.Content})
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	client := &http.Client{Timeout: c.Timeout}
	url := strings.TrimRight(c.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openrouter request failed: %w", err)
	}
	defer resp.Body.Close()

	respRaw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ChatFailure{StatusCode: resp.StatusCode, Body: string(respRaw)}
	}

	type choice struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	type respBody struct {
		Choices []choice `json:"choices"`
		Usage   *struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
			TotalTokens      int `json:"total_tokens"`
		} `json:"usage"`
	}
	var decoded respBody
	if err := json.Unmarshal(respRaw, &decoded); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return nil, fmt.Errorf("openrouter response missing choices")
	}

	result := &ports.LLMResponse{Content: decoded.Choices[0].Message.Content}
	if decoded.Usage != nil {
		result.Usage = &ports.UsageData{
			PromptTokens:     decoded.Usage.PromptTokens,
			CompletionTokens: decoded.Usage.CompletionTokens,
			TotalTokens:      decoded.Usage.TotalTokens,
			Model:            model,
			Provider:         "openrouter",
		}
	}
	return result, nil
}

// MockChatClient is a mock chat client for testing
type MockChatClient struct {
	Response string // Set this for testing
	Error    error  // Set this to simulate errors

	// LastModel and LastMessages record the most recent call.
	LastModel    string
	LastMessages []chat.Message
}

func (m *MockChatClient) ChatCompletion(ctx context.Context, model string, messages []chat.Message) (*ports.LLMResponse, error) {
	m.LastModel = model
	m.LastMessages = messages
	if m.Error != nil {
		return nil, m.Error
	}
	response := m.Response
	if response == "" {
		response = "Focus on onboarding friction and win-back offers for at-risk customers."
	}
	return &ports.LLMResponse{Content: response}, nil
}
