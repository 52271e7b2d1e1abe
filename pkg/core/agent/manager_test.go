package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"hagwon_strategy/pkg/core/llm"
)

type fakeProvider struct {
	name   string
	out    string
	err    error
	calls  int
	system string
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) GenerateResponse(ctx context.Context, prompt, systemPrompt string, options map[string]interface{}) (string, error) {
	f.calls++
	f.system = systemPrompt
	return f.out, f.err
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(Config{ActiveProvider: "a", RequestsPerMinute: 600, SystemPrompt: "sys"})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestNewManager_BuildsConfiguredProviders(t *testing.T) {
	m, err := NewManager(DefaultConfig())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if m.GetActiveProvider() != "gemini" {
		t.Errorf("active = %s", m.GetActiveProvider())
	}
	if m.GetProviderByName("claude") == nil {
		t.Error("claude provider missing")
	}
	if got := m.ProviderNames(); len(got) != 3 || got[0] != "claude" {
		t.Errorf("unexpected names %v", got)
	}
}

func TestNewManager_UnknownKind(t *testing.T) {
	_, err := NewManager(Config{Providers: map[string]llm.ProviderConfig{"x": {Kind: "nope"}}})
	if err == nil {
		t.Error("expected error for unknown provider kind")
	}
}

func TestNewManager_FallsBackToFirstProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ActiveProvider = "missing"
	m, err := NewManager(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if m.GetActiveProvider() != "claude" {
		t.Errorf("active = %s", m.GetActiveProvider())
	}
}

func TestGenerate_UsesActiveProviderAndSystemPrompt(t *testing.T) {
	m := newTestManager(t)
	a := &fakeProvider{name: "a", out: "  결과  "}
	b := &fakeProvider{name: "b", out: "other"}
	m.RegisterProvider(a)
	m.RegisterProvider(b)

	out, err := m.Generate(context.Background(), "p")
	if err != nil {
		t.Fatal(err)
	}
	if out != "결과" || a.system != "sys" || b.calls != 0 {
		t.Errorf("unexpected routing: out=%q a=%+v b=%+v", out, a, b)
	}

	if err := m.SetGlobalProvider("b"); err != nil {
		t.Fatal(err)
	}
	if out, _ := m.Generate(context.Background(), "p"); out != "other" {
		t.Errorf("switch not applied: %q", out)
	}
	if err := m.SetGlobalProvider("zzz"); err == nil {
		t.Error("expected error switching to unknown provider")
	}
}

func TestGenerateFor_TaskOverride(t *testing.T) {
	m := newTestManager(t)
	m.config.Agents = map[string]AgentConfig{"marketing": {Provider: "b"}}
	m.RegisterProvider(&fakeProvider{name: "a", out: "A"})
	m.RegisterProvider(&fakeProvider{name: "b", out: "B"})

	if out, _ := m.For("marketing").Generate(context.Background(), "p"); out != "B" {
		t.Errorf("override ignored: %q", out)
	}
	if out, _ := m.For("report").Generate(context.Background(), "p"); out != "A" {
		t.Errorf("default not used: %q", out)
	}
}

func TestGenerate_ClassifiesErrors(t *testing.T) {
	m := newTestManager(t)
	m.RegisterProvider(&fakeProvider{name: "a", err: errors.New("upstream exploded")})
	_, err := m.Generate(context.Background(), "p")
	if !errors.Is(err, llm.ErrService) {
		t.Errorf("expected ErrService, got %v", err)
	}
}

func TestGenerate_NoProvider(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.Generate(context.Background(), "p"); !errors.Is(err, llm.ErrService) {
		t.Errorf("expected ErrService, got %v", err)
	}
}

func TestGenerate_RateLimitWaitHonorsDeadline(t *testing.T) {
	m, err := NewManager(Config{ActiveProvider: "a", RequestsPerMinute: 1})
	if err != nil {
		t.Fatal(err)
	}
	m.RegisterProvider(&fakeProvider{name: "a", out: "ok"})

	if _, err := m.Generate(context.Background(), "p"); err != nil {
		t.Fatalf("first call should pass: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := m.Generate(ctx, "p"); !errors.Is(err, llm.ErrTimeout) {
		t.Errorf("expected ErrTimeout while rate limited, got %v", err)
	}
}
