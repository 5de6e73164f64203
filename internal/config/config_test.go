package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archlens/internal/analysis"
	llmclient "archlens/internal/llm/client"
	arch "archlens/internal/types/architecture"
)

var envKeys = []string{
	"ARCHLENS_FRAMEWORK", "ARCHLENS_PROVIDER", "ARCHLENS_MODEL", "GEMINI_API_KEY", "GROQ_API_KEY",
	"GROQ_BASE_URL", "OLLAMA_HOST", "LOG_LEVEL", "LOG_FORMAT", "PORT", "LLM_RPS", "LLM_BURST",
	"LLM_CACHE_SIZE", "LLM_SCENARIO_TOKENS", "LLM_QUESTION_TOKENS",
}

// clearEnv isolates tests from the developer's environment; t.Setenv
// restores the previous values afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "fake", cfg.LLM.Provider)
	assert.Equal(t, analysis.DefaultModel, cfg.LLM.Model)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, 2000, cfg.LLM.ScenarioTokens)
	assert.Equal(t, 300, cfg.LLM.QuestionTokens)
	assert.Equal(t, arch.FrameworkTOGAF, cfg.DefaultFramework())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadPicksProviderFromKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("GROQ_API_KEY", "gk")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "groq", cfg.LLM.Provider)
	assert.Equal(t, DefaultGroqModel, cfg.LLM.Model)
	assert.Equal(t, llmclient.ProviderConfig{Provider: "groq", Model: DefaultGroqModel, APIKey: "gk"}, cfg.ProviderConfig())
}

func TestLoadYAMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "archlens.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
framework: zachman
llm:
  provider: ollama
  model: mistral
  ollama_host: http://ollama:11434
  cache_size: 64
server:
  port: "9000"
log:
  level: debug
`), 0o644))
	t.Setenv("LLM_RPS", "2.5")
	t.Setenv("ARCHLENS_MODEL", "qwen")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "qwen", cfg.LLM.Model)
	assert.Equal(t, 2.5, cfg.LLM.RPS)
	assert.Equal(t, 64, cfg.LLM.CacheSize)
	assert.Equal(t, ":9000", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, arch.FrameworkZachman, cfg.DefaultFramework())
	assert.Equal(t, "http://ollama:11434", cfg.ProviderConfig().BaseURL)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("ARCHLENS_PROVIDER", "gemini")
	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("ARCHLENS_PROVIDER", "openai")
	_, err = Load("")
	assert.ErrorIs(t, err, llmclient.ErrUnknownProvider)

	t.Setenv("ARCHLENS_PROVIDER", "fake")
	t.Setenv("ARCHLENS_FRAMEWORK", "cobit")
	_, err = Load("")
	assert.ErrorIs(t, err, arch.ErrUnknownFramework)

	t.Setenv("ARCHLENS_FRAMEWORK", "")
	t.Setenv("LLM_BURST", "many")
	_, err = Load("")
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOverride(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)

	require.NoError(t, cfg.Override("", ""))
	assert.Equal(t, analysis.DefaultModel, cfg.LLM.Model)

	require.NoError(t, cfg.Override("Ollama", ""))
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, DefaultOllamaModel, cfg.LLM.Model)

	require.NoError(t, cfg.Override("", "phi3"))
	assert.Equal(t, "phi3", cfg.LLM.Model)

	assert.Error(t, cfg.Override("gemini", ""))
}
