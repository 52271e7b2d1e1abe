package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Provider is the interface for all text-generation backends.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
	Name() string
}

// Kinds accepted in ProviderConfig.Kind.
const (
	KindGemini       = "gemini"
	KindGeminiLegacy = "gemini-legacy"
	KindClaude       = "claude"
	KindOpenAI       = "openai" // any OpenAI-compatible chat endpoint
)

// ProviderConfig describes one configured backend.
type ProviderConfig struct {
	Kind        string  `yaml:"kind"`
	Model       string  `yaml:"model"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	BaseURL     string  `yaml:"base_url"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

func (c ProviderConfig) apiKey() string {
	if c.APIKeyEnv == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(c.APIKeyEnv))
}

func (c ProviderConfig) maxTokens() int {
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return 4096
}

// NewProvider builds the backend for cfg. A missing API key is not an
// error here; the first call reports it as ErrAuth.
func NewProvider(name string, cfg ProviderConfig) (Provider, error) {
	switch cfg.Kind {
	case KindGemini:
		return &GeminiProvider{name: name, cfg: cfg}, nil
	case KindGeminiLegacy:
		return &GeminiLegacyProvider{name: name, cfg: cfg}, nil
	case KindClaude:
		return &ClaudeProvider{name: name, cfg: cfg}, nil
	case KindOpenAI:
		return NewOpenAIProvider(name, cfg), nil
	}
	return nil, fmt.Errorf("provider %s: unknown kind %q", name, cfg.Kind)
}

func optString(options map[string]interface{}, key, def string) string {
	if v, ok := options[key].(string); ok && v != "" {
		return v
	}
	return def
}

func optFloat(options map[string]interface{}, key string, def float64) float64 {
	switch v := options[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	}
	return def
}
