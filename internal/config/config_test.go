package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churnmate/internal/errors"
)

func TestLoadFailsWithoutCredential(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "sk-test")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("PORT", "")
	t.Setenv("CHURN_COLUMN", "")
	t.Setenv("LLM_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.AI.OpenRouterKey)
	assert.Equal(t, "mistralai/mistral-7b-instruct", cfg.AI.Model)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.AI.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.AI.Timeout)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "Churn", cfg.Data.ChurnColumn)
	assert.EqualValues(t, 50, cfg.Data.MaxUploadMB)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "sk-test")
	t.Setenv("LLM_MODEL", "meta-llama/llama-3-8b-instruct")
	t.Setenv("CHURN_COLUMN", "Cancelled")
	t.Setenv("LLM_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "meta-llama/llama-3-8b-instruct", cfg.AI.Model)
	assert.Equal(t, "Cancelled", cfg.Data.ChurnColumn)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
}
