package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GeminiLegacyProvider talks to Gemini through the older generative-ai-go
// SDK. It is kept for model listing and for deployments pinned to it.
type GeminiLegacyProvider struct {
	name string
	cfg  ProviderConfig

	mu     sync.Mutex
	client *genai.Client
}

var _ Provider = (*GeminiLegacyProvider)(nil)

func (p *GeminiLegacyProvider) Name() string { return p.name }

func (p *GeminiLegacyProvider) getClient(ctx context.Context) (*genai.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		return p.client, nil
	}
	apiKey := p.cfg.apiKey()
	if apiKey == "" {
		return nil, missingKey(p.name, p.cfg.APIKeyEnv)
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, Classify(p.name, 0, fmt.Errorf("failed to create genai client: %w", err))
	}
	p.client = client
	return client, nil
}

func (p *GeminiLegacyProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	client, err := p.getClient(ctx)
	if err != nil {
		return "", err
	}

	name := optString(options, "model", p.cfg.Model)
	if name == "" {
		name = defaultGeminiModel
	}
	model := client.GenerativeModel(name)
	model.SetTemperature(float32(optFloat(options, "temperature", p.cfg.Temperature)))
	model.SetMaxOutputTokens(int32(p.cfg.maxTokens()))
	if systemPrompt != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", Classify(p.name, googleStatus(err), fmt.Errorf("gemini generation failed: %w", err))
	}

	var out strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				out.WriteString(string(txt))
			}
		}
		break
	}
	if strings.TrimSpace(out.String()) == "" {
		return "", Classify(p.name, 0, errors.New("gemini returned no text"))
	}
	return out.String(), nil
}

func googleStatus(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}

// ModelInfo is one entry of ListGeminiModels.
type ModelInfo struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Description string   `json:"description"`
	Methods     []string `json:"methods"`
}

// ListGeminiModels returns the models the key can see, optionally only
// those supporting generateContent.
func ListGeminiModels(ctx context.Context, apiKey string, generateOnly bool) ([]ModelInfo, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w: api key is empty", ErrAuth)
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, Classify("gemini", 0, err)
	}
	defer client.Close()

	var models []ModelInfo
	iter := client.ListModels(ctx)
	for {
		m, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, Classify("gemini", googleStatus(err), fmt.Errorf("list models: %w", err))
		}
		if generateOnly && !supports(m.SupportedGenerationMethods, "generateContent") {
			continue
		}
		models = append(models, ModelInfo{
			Name:        m.Name,
			DisplayName: m.DisplayName,
			Description: m.Description,
			Methods:     m.SupportedGenerationMethods,
		})
	}
	return models, nil
}

func supports(methods []string, want string) bool {
	for _, m := range methods {
		if m == want {
			return true
		}
	}
	return false
}
