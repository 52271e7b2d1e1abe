package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4o-mini"
)

// OpenAIProvider speaks the chat-completions protocol shared by OpenAI,
// DeepSeek and most self-hosted gateways.
type OpenAIProvider struct {
	name   string
	cfg    ProviderConfig
	client *http.Client
}

var _ Provider = (*OpenAIProvider)(nil)

func NewOpenAIProvider(name string, cfg ProviderConfig) *OpenAIProvider {
	return &OpenAIProvider{name: name, cfg: cfg, client: &http.Client{}}
}

func (p *OpenAIProvider) Name() string { return p.name }

type chatRequest struct {
	Messages    []Message `json:"messages"`
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Stream      bool      `json:"stream"`
}

type Message struct {
	Content string `json:"content"`
	Role    string `json:"role"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *OpenAIProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	apiKey := p.cfg.apiKey()
	if apiKey == "" {
		return "", missingKey(p.name, p.cfg.APIKeyEnv)
	}

	model := optString(options, "model", p.cfg.Model)
	if model == "" {
		model = defaultOpenAIModel
	}
	baseURL := strings.TrimRight(p.cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}

	reqBody := chatRequest{
		Model:       model,
		MaxTokens:   p.cfg.maxTokens(),
		Temperature: optFloat(options, "temperature", p.cfg.Temperature),
	}
	if systemPrompt != "" {
		reqBody.Messages = append(reqBody.Messages, Message{Content: systemPrompt, Role: "system"})
	}
	reqBody.Messages = append(reqBody.Messages, Message{Content: prompt, Role: "user"})

	jsonBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", Classify(p.name, 0, fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/chat/completions", bytes.NewReader(jsonBytes))
	if err != nil {
		return "", Classify(p.name, 0, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	res, err := p.client.Do(req)
	if err != nil {
		return "", Classify(p.name, 0, fmt.Errorf("api call: %w", err))
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", Classify(p.name, 0, fmt.Errorf("read body: %w", err))
	}
	if res.StatusCode != http.StatusOK {
		return "", Classify(p.name, res.StatusCode, fmt.Errorf("api returned status %d: %s", res.StatusCode, truncate(string(body), 300)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", Classify(p.name, 0, fmt.Errorf("decode response: %w", err))
	}
	if parsed.Error != nil {
		return "", Classify(p.name, 0, errors.New(parsed.Error.Message))
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", Classify(p.name, 0, errors.New("no choices returned"))
	}
	return parsed.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
