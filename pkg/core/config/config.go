package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"hagwon_strategy/pkg/core/agent"
)

type Server struct {
	Addr          string `yaml:"addr"`
	AllowedOrigin string `yaml:"allowed_origin"`
}

type Log struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
}

type Store struct {
	Driver      string `yaml:"driver"`
	BadgerDir   string `yaml:"badger_dir"`
	DatabaseURL string `yaml:"database_url"`
	// cron spec for badger value-log GC
	Maintenance string `yaml:"maintenance"`
}

type NEIS struct {
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// APIKey resolves the configured env var.
func (n NEIS) APIKey() string {
	if n.APIKeyEnv == "" {
		return os.Getenv("NEIS_API_KEY")
	}
	return os.Getenv(n.APIKeyEnv)
}

// Config is config/app.yaml.
type Config struct {
	Server     Server       `yaml:"server"`
	Log        Log          `yaml:"log"`
	Store      Store        `yaml:"store"`
	LLM        agent.Config `yaml:"llm"`
	NEIS       NEIS         `yaml:"neis"`
	PromptsDir string       `yaml:"prompts_dir"`
}

// Default is used when no file is present.
func Default() *Config {
	return &Config{
		Server: Server{Addr: ":8080", AllowedOrigin: "*"},
		Log:    Log{Level: "info", Console: true},
		Store:  Store{Driver: "memory", BadgerDir: "data/badger"},
		LLM:    agent.DefaultConfig(),
		NEIS:   NEIS{BaseURL: "https://open.neis.go.kr/hub", APIKeyEnv: "NEIS_API_KEY"},
	}
}

// Load reads path over the defaults and applies env overrides. A missing
// file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	// yaml.v2 merges into existing maps; let the file own the provider set
	cfg.LLM.Providers = nil
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("HAGWON_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("HAGWON_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("HAGWON_STORE_DRIVER"); v != "" {
		c.Store.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Store.DatabaseURL = v
	}
	if v := os.Getenv("HAGWON_LLM_PROVIDER"); v != "" {
		c.LLM.ActiveProvider = v
	}
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Store.Driver == "" {
		c.Store.Driver = def.Store.Driver
	}
	if c.NEIS.BaseURL == "" {
		c.NEIS.BaseURL = def.NEIS.BaseURL
	}
	if c.LLM.Timeout <= 0 {
		c.LLM.Timeout = def.LLM.Timeout
	}
	if c.LLM.RequestsPerMinute <= 0 {
		c.LLM.RequestsPerMinute = def.LLM.RequestsPerMinute
	}
	if len(c.LLM.Providers) == 0 {
		c.LLM.Providers = def.LLM.Providers
	}
	if c.LLM.ActiveProvider == "" {
		c.LLM.ActiveProvider = def.LLM.ActiveProvider
	}
}

// Timeout is a convenience for callers that only need the LLM deadline.
func (c *Config) Timeout() time.Duration { return c.LLM.Timeout }
