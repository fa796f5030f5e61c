package usage

import (
	"sync"

	"churnmate/domain/core"
	"churnmate/internal"
	"churnmate/ports"
)

// Record is one recorded LLM call
type Record struct {
	OperationType    string         `json:"operation_type"` // "advice" or "chat"
	Provider         string         `json:"provider"`
	Model            string         `json:"model"`
	PromptTokens     int            `json:"prompt_tokens"`
	CompletionTokens int            `json:"completion_tokens"`
	TotalTokens      int            `json:"total_tokens"`
	CreatedAt        core.Timestamp `json:"created_at"`
}

// Totals aggregates recorded usage
type Totals struct {
	Calls            int `json:"calls"`
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Service accumulates LLM token usage in memory. Nothing is persisted; the
// numbers exist for the dashboard and reset with the process.
type Service struct {
	log *internal.Logger

	mu      sync.RWMutex
	records []Record
}

// NewService creates a new usage service
func NewService() *Service {
	return &Service{log: internal.NewLogger("UsageService")}
}

// RecordUsage records token usage for one operation. Providers that report
// no usage block are skipped; tracking never fails the caller.
func (s *Service) RecordUsage(operationType string, usage *ports.UsageData) {
	if usage == nil {
		return
	}
	if usage.PromptTokens < 0 || usage.CompletionTokens < 0 || usage.TotalTokens < 0 {
		s.log.Warn("ignoring invalid token counts: %+v", usage)
		return
	}

	s.mu.Lock()
	s.records = append(s.records, Record{
		OperationType:    operationType,
		Provider:         usage.Provider,
		Model:            usage.Model,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
		CreatedAt:        core.Now(),
	})
	s.mu.Unlock()

	s.log.Debug("recorded %s usage: %d tokens", operationType, usage.TotalTokens)
}

// GetTotals returns aggregated usage across all recorded calls
func (s *Service) GetTotals() Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := Totals{Calls: len(s.records)}
	for _, r := range s.records {
		totals.PromptTokens += r.PromptTokens
		totals.CompletionTokens += r.CompletionTokens
		totals.TotalTokens += r.TotalTokens
	}
	return totals
}

// ListRecent returns up to limit most recent records, newest first
func (s *Service) ListRecent(limit int) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.records) {
		limit = len(s.records)
	}
	out := make([]Record, 0, limit)
	for i := len(s.records) - 1; i >= len(s.records)-limit; i-- {
		out = append(out, s.records[i])
	}
	return out
}
