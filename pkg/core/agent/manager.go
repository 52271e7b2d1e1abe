package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/phuslu/log"
	"golang.org/x/time/rate"

	"hagwon_strategy/pkg/core/llm"
)

type Config struct {
	ActiveProvider    string                        `yaml:"active_provider"`
	Timeout           time.Duration                 `yaml:"timeout"`
	RequestsPerMinute int                           `yaml:"requests_per_minute"`
	SystemPrompt      string                        `yaml:"system_prompt"`
	Providers         map[string]llm.ProviderConfig `yaml:"providers"`
	Agents            map[string]AgentConfig        `yaml:"agents"`
}

// AgentConfig lets one task (report, marketing, budget) pin a provider.
type AgentConfig struct {
	Provider    string `yaml:"provider"` // Optional override
	Description string `yaml:"description"`
}

func DefaultConfig() Config {
	return Config{
		ActiveProvider:    "gemini",
		Timeout:           45 * time.Second,
		RequestsPerMinute: 20,
		SystemPrompt:      "당신은 대한민국 영어 학원 전문 경영 컨설턴트입니다.",
		Providers: map[string]llm.ProviderConfig{
			"gemini": {Kind: llm.KindGemini, Model: "gemini-2.0-flash", APIKeyEnv: "GEMINI_API_KEY", Temperature: 0.7},
			"claude": {Kind: llm.KindClaude, APIKeyEnv: "ANTHROPIC_API_KEY", Temperature: 0.7},
			"openai": {Kind: llm.KindOpenAI, APIKeyEnv: "OPENAI_API_KEY", Temperature: 0.7},
		},
	}
}

type Manager struct {
	mu        sync.RWMutex
	config    Config
	providers map[string]llm.Provider
	limiter   *rate.Limiter
}

func NewManager(config Config) (*Manager, error) {
	m := &Manager{
		config:    config,
		providers: make(map[string]llm.Provider, len(config.Providers)),
	}
	for name, pc := range config.Providers {
		p, err := llm.NewProvider(name, pc)
		if err != nil {
			return nil, err
		}
		m.providers[name] = p
	}

	rpm := config.RequestsPerMinute
	if rpm <= 0 {
		rpm = 20
	}
	m.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm)

	if _, ok := m.providers[config.ActiveProvider]; !ok && len(m.providers) > 0 {
		log.Warn().Str("provider", config.ActiveProvider).Msg("active provider not configured, using first available")
		m.config.ActiveProvider = m.ProviderNames()[0]
	}
	return m, nil
}

// RegisterProvider adds or replaces a provider under its own name.
func (m *Manager) RegisterProvider(p llm.Provider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.providers[p.Name()] = p
	if m.config.ActiveProvider == "" {
		m.config.ActiveProvider = p.Name()
	}
}

func (m *Manager) GetProvider(task string) llm.Provider {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// 1. Check for task-specific override
	if ac, ok := m.config.Agents[task]; ok && ac.Provider != "" {
		if p, ok := m.providers[ac.Provider]; ok {
			return p
		}
	}

	// 2. Use global active provider
	return m.providers[m.config.ActiveProvider]
}

// GetProviderByName retrieves a provider instance by its configured name.
func (m *Manager) GetProviderByName(name string) llm.Provider {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.providers[name]
}

func (m *Manager) SetGlobalProvider(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.providers[name]; !ok {
		return fmt.Errorf("provider %s not found", name)
	}
	m.config.ActiveProvider = name
	log.Info().Str("provider", name).Msg("global provider switched")
	return nil
}

func (m *Manager) GetActiveProvider() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.ActiveProvider
}

// ProviderNames lists configured providers in sorted order.
func (m *Manager) ProviderNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.providers))
	for n := range m.providers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Generate sends prompt to the active provider.
func (m *Manager) Generate(ctx context.Context, prompt string) (string, error) {
	return m.GenerateFor(ctx, "", prompt)
}

// GenerateFor sends prompt to the provider chosen for task. Every error is
// classified as llm.ErrTimeout, llm.ErrAuth or llm.ErrService.
func (m *Manager) GenerateFor(ctx context.Context, task, prompt string) (string, error) {
	provider := m.GetProvider(task)
	if provider == nil {
		return "", fmt.Errorf("agent: %w: no provider configured", llm.ErrService)
	}

	if m.config.Timeout > 0 {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, m.config.Timeout)
			defer cancel()
		}
	}

	if err := m.limiter.Wait(ctx); err != nil {
		return "", llm.Classify(provider.Name(), 0, fmt.Errorf("rate limit wait: %w", ctxErr(ctx, err)))
	}

	start := time.Now()
	out, err := provider.GenerateResponse(ctx, prompt, m.config.SystemPrompt, nil)
	if err != nil {
		err = llm.Classify(provider.Name(), 0, err)
		log.Warn().Str("provider", provider.Name()).Str("task", task).
			Str("kind", llm.KindName(err)).Err(err).Msg("text generation failed")
		return "", err
	}
	log.Debug().Str("provider", provider.Name()).Str("task", task).
		Int("chars", len(out)).Dur("took", time.Since(start)).Msg("text generated")
	return strings.TrimSpace(out), nil
}

// ctxErr prefers the context's own error. The limiter reports a wait
// that would outlast the deadline before the deadline actually passes.
func ctxErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if _, ok := ctx.Deadline(); ok {
		return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
	}
	return err
}

// For binds the manager to one task so it can be handed to callers that
// only know Generate(ctx, prompt).
func (m *Manager) For(task string) TaskGenerator {
	return TaskGenerator{m: m, task: task}
}

type TaskGenerator struct {
	m    *Manager
	task string
}

func (g TaskGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.m.GenerateFor(ctx, g.task, prompt)
}
