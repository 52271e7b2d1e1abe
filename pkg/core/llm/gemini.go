package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider implements the Provider interface for Google's Gemini models.
type GeminiProvider struct {
	name string
	cfg  ProviderConfig

	mu     sync.Mutex
	client *genai.Client
}

// Ensure interface compliance
var _ Provider = (*GeminiProvider)(nil)

func (p *GeminiProvider) Name() string { return p.name }

func (p *GeminiProvider) getClient(ctx context.Context) (*genai.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		return p.client, nil
	}
	apiKey := p.cfg.apiKey()
	if apiKey == "" {
		return nil, missingKey(p.name, p.cfg.APIKeyEnv)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, Classify(p.name, 0, fmt.Errorf("failed to create GenAI client: %w", err))
	}
	p.client = client
	return client, nil
}

// GenerateResponse sends a generateContent request to the Gemini API.
func (p *GeminiProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	client, err := p.getClient(ctx)
	if err != nil {
		return "", err
	}

	model := optString(options, "model", p.cfg.Model)
	if model == "" {
		model = defaultGeminiModel
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(optFloat(options, "temperature", p.cfg.Temperature))),
		MaxOutputTokens: int32(p.cfg.maxTokens()),
	}
	if v, ok := options["json"].(bool); ok && v {
		config.ResponseMIMEType = "application/json"
	}
	if systemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return "", Classify(p.name, geminiStatus(err), fmt.Errorf("gemini generation failed: %w", err))
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", Classify(p.name, 0, errors.New("gemini returned no text"))
	}
	return text, nil
}

func geminiStatus(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code
	}
	return 0
}
