package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/futig/realtor-bot/internal/dialogue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("LISTINGS_API_BASE", "https://listings.example")
	t.Setenv("LISTINGS_API_KEY", "k")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, 3, cfg.LimitPerPage)
	assert.Equal(t, 15*time.Minute, cfg.TextsTTL())
	assert.Equal(t, "/api/get_apartments", cfg.ListingsCfg.Endpoint)
	assert.Equal(t, "secondary", cfg.ListingsCfg.Section)
	assert.Equal(t, 20*time.Second, cfg.ListingsCfg.RequestTimeout)
	assert.Equal(t, "https://listings.example", cfg.ListingsCfg.Url)
	assert.Equal(t, uint(3), cfg.ListingsCfg.Retry.Attempts)
	assert.Equal(t, dialogue.DefaultQuestions, cfg.Questions)
}

func TestParseValidation(t *testing.T) {
	t.Setenv("STORAGE", "postgres")
	t.Setenv("LIMIT_PER_PAGE", "0")

	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL is required")
	assert.Contains(t, err.Error(), "LIMIT_PER_PAGE must be between 1 and 20")
	assert.Contains(t, err.Error(), "LISTINGS_API_BASE is required")
}

func TestParseQuestionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"question_key":"budget","question_text":"Бюджет?"}]`), 0o600))

	t.Setenv("ENABLE_MOCKS", "true")
	t.Setenv("QUESTIONS_PATH", path)

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, []dialogue.Question{{Key: "budget", Text: "Бюджет?"}}, cfg.Questions)
}

func TestGetEnvFile(t *testing.T) {
	assert.Equal(t, ".env.prod", getEnvFile("production"))
	assert.Equal(t, ".env.local", getEnvFile("dev"))
	assert.Equal(t, ".env.staging", getEnvFile("staging"))
}
