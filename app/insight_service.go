package app

import (
	"context"
	"fmt"

	"churnmate/domain/chat"
	"churnmate/domain/dataset"
	"churnmate/internal"
	"churnmate/internal/analysis"
	"churnmate/internal/errors"
	"churnmate/internal/usage"
	"churnmate/ports"
)

// advicePromptFormat seeds the one-shot retention advice request with the
// computed churn rate, two decimal places
const advicePromptFormat = "My churn rate is %.2f%%. What advice can you give to reduce churn and improve customer retention?"

// InsightService runs the full analysis pass over an uploaded dataset:
// summary, churn metrics, numeric profiles, and one-shot retention advice
// through the chat gateway.
type InsightService struct {
	chatClient   ports.ChatClient
	usageService *usage.Service
	model        string
	churnColumn  string
	mapping      analysis.OutcomeMapping
	log          *internal.Logger
}

// InsightRequest defines inputs for an analysis pass
type InsightRequest struct {
	Dataset *dataset.Dataset
	// SkipAdvice suppresses the outbound advice call (used when the caller
	// only wants recomputation).
	SkipAdvice bool
}

// InsightResult carries everything the dashboard shows after an upload.
// Summary is always present when the dataset parsed; the churn and advice
// fields degrade independently with their own user-facing messages.
type InsightResult struct {
	Summary dataset.Summary `json:"summary"`
	Profile dataset.Profile `json:"profile"`

	Metrics      *dataset.ChurnMetrics `json:"metrics,omitempty"`
	MetricsError string                `json:"metrics_error,omitempty"`

	Advice      string `json:"advice,omitempty"`
	AdviceError string `json:"advice_error,omitempty"`
}

// NewInsightService creates an insight service
func NewInsightService(chatClient ports.ChatClient, usageService *usage.Service, model, churnColumn string, mapping analysis.OutcomeMapping) *InsightService {
	if mapping == nil {
		mapping = analysis.DefaultOutcomeMapping()
	}
	return &InsightService{
		chatClient:   chatClient,
		usageService: usageService,
		model:        model,
		churnColumn:  churnColumn,
		mapping:      mapping,
		log:          internal.NewLogger("InsightService"),
	}
}

// Analyze runs summarization, churn computation, and profiling over the
// dataset, then asks the assistant for advice seeded with the churn rate.
// Metric and advice failures are folded into the result as messages; only a
// broken profile computation returns an error.
func (s *InsightService) Analyze(ctx context.Context, req InsightRequest) (*InsightResult, error) {
	ds := req.Dataset
	if ds == nil {
		return nil, errors.InvalidInput("no dataset loaded")
	}

	result := &InsightResult{Summary: analysis.Summarize(ds)}

	profile, err := analysis.ProfileDataset(ctx, ds)
	if err != nil {
		return nil, errors.Wrap(err, "failed to profile dataset")
	}
	result.Profile = profile

	metrics, err := analysis.ComputeChurn(ds, s.churnColumn, s.mapping)
	if err != nil {
		// Recovered locally: summarization stands on its own.
		s.log.Info("churn metrics unavailable for %s: %v", ds.GetDisplayName(), err)
		result.MetricsError = err.Error()
		return result, nil
	}
	result.Metrics = &metrics

	if !req.SkipAdvice {
		advice, err := s.requestAdvice(ctx, metrics.ChurnRate)
		if err != nil {
			s.log.Warn("advice request failed: %v", err)
			result.AdviceError = err.Error()
		} else {
			result.Advice = advice
		}
	}

	return result, nil
}

// requestAdvice makes the one-shot gateway call. No session is involved;
// the prompt stands alone, matching the dashboard's automated advice box.
func (s *InsightService) requestAdvice(ctx context.Context, churnRate float64) (string, error) {
	prompt := fmt.Sprintf(advicePromptFormat, churnRate)
	messages := []chat.Message{
		chat.NewSystemMessage(chat.DefaultSystemPrompt),
		chat.NewUserMessage(prompt),
	}

	resp, err := s.chatClient.ChatCompletion(ctx, s.model, messages)
	if err != nil {
		return "", err
	}
	s.usageService.RecordUsage("advice", resp.Usage)
	return resp.Content, nil
}
