package container

import (
	"churnmate/adapters/llm"
	"churnmate/adapters/tabular"
	"churnmate/app"
	"churnmate/internal/analysis"
	sessions "churnmate/internal/chat"
	"churnmate/internal/config"
	"churnmate/internal/errors"
	"churnmate/internal/usage"
	"churnmate/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Adapters
	ChatClient ports.ChatClient
	Reader     ports.TabularReader

	// Services
	SessionManager *sessions.SessionManager
	UsageService   *usage.Service
	InsightService *app.InsightService
	ChatService    *app.ChatService
}

// New wires the application from config. Fails fast when the chat
// credential is unusable; the dashboard does not start without its gateway.
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, errors.ConfigInvalid("config cannot be nil")
	}

	chatClient, err := llm.NewChatClient(llm.Config{
		APIKey:  cfg.AI.OpenRouterKey,
		BaseURL: cfg.AI.BaseURL,
		Timeout: cfg.AI.Timeout,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create chat client")
	}

	usageService := usage.NewService()
	sessionManager := sessions.NewSessionManager(cfg.AI.SystemPrompt)

	return &Container{
		Config:         cfg,
		ChatClient:     chatClient,
		Reader:         tabular.NewDataReader(),
		SessionManager: sessionManager,
		UsageService:   usageService,
		InsightService: app.NewInsightService(chatClient, usageService, cfg.AI.Model, cfg.Data.ChurnColumn, analysis.DefaultOutcomeMapping()),
		ChatService:    app.NewChatService(chatClient, sessionManager, usageService, cfg.AI.Model),
	}, nil
}
