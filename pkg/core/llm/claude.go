package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultClaudeModel = "claude-3-5-haiku-latest"

// ClaudeProvider implements the Provider interface for Anthropic's Messages API.
type ClaudeProvider struct {
	name string
	cfg  ProviderConfig

	mu     sync.Mutex
	client *anthropic.Client
}

var _ Provider = (*ClaudeProvider)(nil)

func (p *ClaudeProvider) Name() string { return p.name }

func (p *ClaudeProvider) getClient() (*anthropic.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		return p.client, nil
	}
	apiKey := p.cfg.apiKey()
	if apiKey == "" {
		return nil, missingKey(p.name, p.cfg.APIKeyEnv)
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if p.cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(p.cfg.BaseURL))
	}
	client := anthropic.NewClient(opts...)
	p.client = &client
	return p.client, nil
}

func (p *ClaudeProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	client, err := p.getClient()
	if err != nil {
		return "", err
	}

	model := optString(options, "model", p.cfg.Model)
	if model == "" {
		model = defaultClaudeModel
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(p.cfg.maxTokens()),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if temp := optFloat(options, "temperature", p.cfg.Temperature); temp > 0 {
		params.Temperature = anthropic.Float(temp)
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}

	resp, err := client.Messages.New(ctx, params)
	if err != nil {
		status := 0
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			status = apiErr.StatusCode
		}
		return "", Classify(p.name, status, fmt.Errorf("claude API call failed: %w", err))
	}

	var out strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(out.String()) == "" {
		return "", Classify(p.name, 0, errors.New("no response generated from Claude API"))
	}
	return out.String(), nil
}
