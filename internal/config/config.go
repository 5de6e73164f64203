package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"archlens/internal/analysis"
	llmclient "archlens/internal/llm/client"
	arch "archlens/internal/types/architecture"
)

const (
	DefaultPort        = ":8080"
	DefaultGroqModel   = "llama-3.3-70b-versatile"
	DefaultOllamaModel = "llama3.1"
)

type Config struct {
	Framework string       `yaml:"framework"`
	LLM       LLMConfig    `yaml:"llm"`
	Server    ServerConfig `yaml:"server"`
	Log       LogConfig    `yaml:"log"`
}

type LLMConfig struct {
	Provider       string  `yaml:"provider"`
	Model          string  `yaml:"model"`
	GeminiAPIKey   string  `yaml:"gemini_api_key"`
	GroqAPIKey     string  `yaml:"groq_api_key"`
	GroqBaseURL    string  `yaml:"groq_base_url"`
	OllamaHost     string  `yaml:"ollama_host"`
	RPS            float64 `yaml:"rps"`
	Burst          int     `yaml:"burst"`
	CacheSize      int     `yaml:"cache_size"`
	ScenarioTokens int     `yaml:"scenario_tokens"`
	QuestionTokens int     `yaml:"question_tokens"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads .env (if present), then the optional YAML file at path, then
// environment overrides, and fills defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Framework, "ARCHLENS_FRAMEWORK")
	setString(&cfg.LLM.Provider, "ARCHLENS_PROVIDER")
	setString(&cfg.LLM.Model, "ARCHLENS_MODEL")
	setString(&cfg.LLM.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&cfg.LLM.GroqAPIKey, "GROQ_API_KEY")
	setString(&cfg.LLM.GroqBaseURL, "GROQ_BASE_URL")
	setString(&cfg.LLM.OllamaHost, "OLLAMA_HOST")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")

	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		cfg.Server.Port = v
	}
	if v := strings.TrimSpace(os.Getenv("LLM_RPS")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: LLM_RPS: %w", err)
		}
		cfg.LLM.RPS = f
	}
	for name, dst := range map[string]*int{
		"LLM_BURST":           &cfg.LLM.Burst,
		"LLM_CACHE_SIZE":      &cfg.LLM.CacheSize,
		"LLM_SCENARIO_TOKENS": &cfg.LLM.ScenarioTokens,
		"LLM_QUESTION_TOKENS": &cfg.LLM.QuestionTokens,
	} {
		v := strings.TrimSpace(os.Getenv(name))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
		*dst = n
	}
	return nil
}

func applyDefaults(cfg *Config) {
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	if cfg.LLM.Provider == "" {
		switch {
		case cfg.LLM.GeminiAPIKey != "":
			cfg.LLM.Provider = "gemini"
		case cfg.LLM.GroqAPIKey != "":
			cfg.LLM.Provider = "groq"
		default:
			cfg.LLM.Provider = "fake"
		}
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaultModelFor(cfg.LLM.Provider)
	}
	if cfg.LLM.ScenarioTokens <= 0 {
		cfg.LLM.ScenarioTokens = analysis.DefaultScenarioTokens
	}
	if cfg.LLM.QuestionTokens <= 0 {
		cfg.LLM.QuestionTokens = analysis.DefaultQuestionTokens
	}
	cfg.Server.Port = firstNonEmpty(strings.TrimSpace(cfg.Server.Port), DefaultPort)
	if !strings.Contains(cfg.Server.Port, ":") {
		cfg.Server.Port = ":" + cfg.Server.Port
	}
	cfg.Framework = firstNonEmpty(strings.TrimSpace(cfg.Framework), string(arch.FrameworkTOGAF))
	cfg.Log.Level = firstNonEmpty(strings.TrimSpace(cfg.Log.Level), "info")
	cfg.Log.Format = firstNonEmpty(strings.TrimSpace(cfg.Log.Format), "console")
}

func defaultModelFor(provider string) string {
	switch provider {
	case "groq":
		return DefaultGroqModel
	case "ollama":
		return DefaultOllamaModel
	}
	return analysis.DefaultModel
}

// Override applies command-line provider/model choices. Switching provider
// without a model selects that provider's default model.
func (c *Config) Override(provider, model string) error {
	provider = strings.ToLower(strings.TrimSpace(provider))
	model = strings.TrimSpace(model)
	if provider == "" && model == "" {
		return nil
	}
	if provider != "" && provider != c.LLM.Provider {
		c.LLM.Provider = provider
		c.LLM.Model = defaultModelFor(provider)
	}
	if model != "" {
		c.LLM.Model = model
	}
	return c.Validate()
}

// Validate rejects unknown providers and frameworks and missing API keys.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "gemini":
		if c.LLM.GeminiAPIKey == "" {
			return fmt.Errorf("config: provider gemini requires GEMINI_API_KEY")
		}
	case "groq":
		if c.LLM.GroqAPIKey == "" {
			return fmt.Errorf("config: provider groq requires GROQ_API_KEY")
		}
	case "ollama", "fake":
	default:
		return fmt.Errorf("config: %w: %q", llmclient.ErrUnknownProvider, c.LLM.Provider)
	}
	if _, err := arch.ParseFramework(c.Framework); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DefaultFramework returns the configured framework, TOGAF if invalid.
func (c *Config) DefaultFramework() arch.Framework {
	fw, err := arch.ParseFramework(c.Framework)
	if err != nil {
		return arch.FrameworkTOGAF
	}
	return fw
}

// ProviderConfig maps the LLM section onto the client factory input.
func (c *Config) ProviderConfig() llmclient.ProviderConfig {
	pc := llmclient.ProviderConfig{Provider: c.LLM.Provider, Model: c.LLM.Model}
	switch c.LLM.Provider {
	case "gemini":
		pc.APIKey = c.LLM.GeminiAPIKey
	case "groq":
		pc.APIKey = c.LLM.GroqAPIKey
		pc.BaseURL = c.LLM.GroqBaseURL
	case "ollama":
		pc.BaseURL = c.LLM.OllamaHost
	}
	return pc
}

func setString(dst *string, env string) {
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		*dst = v
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
