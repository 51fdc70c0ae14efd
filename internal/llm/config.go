package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskAnswer TaskType = "answer"
	TaskReport TaskType = "report"
)

// Provider selects the model backend.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled   bool
	LogCalls  bool
	Provider  Provider
	Endpoint  string
	Model     string
	APIKey    string
	TimeoutMs int
	Tasks     map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:   false,
		LogCalls:  false,
		Provider:  ProviderOllama,
		Endpoint:  defaultEndpoint(ProviderOllama),
		Model:     defaultModel(ProviderOllama),
		TimeoutMs: 60000,
		Tasks: map[TaskType]TaskConfig{
			TaskAnswer: {Temperature: 0.7, MaxTokens: 1500, TimeoutMs: 60000},
			TaskReport: {Temperature: 0.7, MaxTokens: 1500, TimeoutMs: 90000},
		},
	}
}

func defaultEndpoint(p Provider) string {
	switch p {
	case ProviderOpenAI:
		return "https://api.openai.com/v1"
	case ProviderGemini:
		return ""
	default:
		return "http://localhost:11434"
	}
}

func defaultModel(p Provider) string {
	switch p {
	case ProviderOpenAI:
		return "gpt-4o"
	case ProviderGemini:
		return "gemini-2.0-flash"
	default:
		return "llama3.2"
	}
}

// ParseProvider accepts a provider name case-insensitively.
func ParseProvider(s string) (Provider, bool) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(s))); p {
	case ProviderOllama, ProviderOpenAI, ProviderGemini:
		return p, true
	default:
		return "", false
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
//
// When BIZPULSE_LLM_ENABLED is unset, hosted providers are enabled as soon
// as their API key is present; Ollama must be enabled explicitly.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("BIZPULSE_LLM_PROVIDER"); v != "" {
		if p, ok := ParseProvider(v); ok {
			cfg.Provider = p
			cfg.Endpoint = defaultEndpoint(p)
			cfg.Model = defaultModel(p)
		}
	}
	switch cfg.Provider {
	case ProviderOpenAI:
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	case ProviderGemini:
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	if v := os.Getenv("BIZPULSE_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	} else {
		cfg.Enabled = cfg.Provider != ProviderOllama && cfg.APIKey != ""
	}
	if v := os.Getenv("BIZPULSE_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("BIZPULSE_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("BIZPULSE_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("BIZPULSE_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskAnswer, "BIZPULSE_LLM_ANSWER_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskReport, "BIZPULSE_LLM_REPORT_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
