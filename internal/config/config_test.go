package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "gpt-3.5-turbo", cfg.ChatModel)
	assert.InDelta(t, 0.7, cfg.Temperature, 0.001)
	assert.Equal(t, 60*time.Second, cfg.ModelTimeout)
	assert.Equal(t, 6000, cfg.ResumeTokenBudget)
	assert.False(t, cfg.ModelConfigured())
	assert.True(t, cfg.IsDev())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("RATE_LIMIT_PER_MIN", "5")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProd())
	assert.True(t, cfg.ModelConfigured())
	assert.Equal(t, 5, cfg.RateLimitPerMin)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	_, err := Load()
	require.Error(t, err)
}

func TestDefaultPersonas(t *testing.T) {
	p := DefaultPersonas()
	assert.Contains(t, p.Questions, "interviewer")
	assert.Contains(t, p.Roadmap, "career development")
	assert.Contains(t, p.Resume, "resume reviewer")
	assert.NotEmpty(t, p.Evaluation)
}

func TestLoadPersonas_EmptyPathUsesDefaults(t *testing.T) {
	p, err := LoadPersonas("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPersonas(), p)
}

func TestLoadPersonas_PartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("questions: You are a terse interviewer.\n"), 0o600))

	p, err := LoadPersonas(path)
	require.NoError(t, err)
	assert.Equal(t, "You are a terse interviewer.", p.Questions)
	assert.Equal(t, DefaultPersonas().Roadmap, p.Roadmap)
}

func TestLoadPersonas_MissingFile(t *testing.T) {
	_, err := LoadPersonas(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadPersonas_BadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- nope"), 0o600))
	_, err := LoadPersonas(path)
	require.Error(t, err)
}
