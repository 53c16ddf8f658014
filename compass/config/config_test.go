package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"SERP_API_KEY", "serp_api_key", "SEARCH_PROVIDER", "SEARCH_BASE_URL", "SEARCH_TIMEOUT",
		"NEWS_SOURCE", "NEWS_FEED_URL", "LLM_PROVIDER", "LLM_MODEL", "LLM_BASE_URL", "LLM_TIMEOUT",
		"OPENAI_API_KEY", "openai_api_key", "GROQ_API_KEY", "COHERE_API_KEY",
		"SCRAPE_FETCHER", "SCRAPE_BODY_MODE", "SCRAPE_TIMEOUT", "SCRAPE_DELAY",
		"SERVER_ADDR", "LOG_DIR", "COMPASS_CONFIG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.SearchProvider != "serpapi" || cfg.NewsSource != "serpapi" || cfg.LLMProvider != "openai" {
		t.Errorf("unexpected providers: %+v", cfg)
	}
	if cfg.LLMModel != "gpt-4" {
		t.Errorf("expected default model gpt-4, got %q", cfg.LLMModel)
	}
	if cfg.ScrapeDelay != time.Second {
		t.Errorf("expected 1s scrape delay, got %v", cfg.ScrapeDelay)
	}
	if cfg.ScrapeTimeout != 15*time.Second {
		t.Errorf("expected 15s scrape timeout, got %v", cfg.ScrapeTimeout)
	}
}

func TestLoadConfigAcceptsLegacyKeys(t *testing.T) {
	clearEnv(t)
	t.Setenv("serp_api_key", "serp-legacy")
	t.Setenv("openai_api_key", "openai-legacy")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.SerpAPIKey != "serp-legacy" || cfg.OpenAIAPIKey != "openai-legacy" {
		t.Errorf("legacy keys not picked up: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestLoadConfigYAMLOverlay(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERP_API_KEY", "from-env")
	path := filepath.Join(t.TempDir(), "compass.yaml")
	content := "llm_provider: ollama\nscrape_delay: 250ms\nnews_source: rss\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COMPASS_CONFIG", path)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.LLMProvider != "ollama" || cfg.LLMModel != "llama3:8b" {
		t.Errorf("overlay provider/model not applied: %q %q", cfg.LLMProvider, cfg.LLMModel)
	}
	if cfg.ScrapeDelay != 250*time.Millisecond {
		t.Errorf("expected 250ms delay, got %v", cfg.ScrapeDelay)
	}
	if cfg.SerpAPIKey != "from-env" {
		t.Errorf("env value lost during overlay: %q", cfg.SerpAPIKey)
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		SerpAPIKey:     "k",
		SearchProvider: "serpapi",
		NewsSource:     "serpapi",
		LLMProvider:    "openai",
		OpenAIAPIKey:   "k",
		ScrapeFetcher:  "http",
		ScrapeBodyMode: "paragraphs",
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"valid", func(c *Config) {}, nil},
		{"missing serp key", func(c *Config) { c.SerpAPIKey = "" }, ErrMissingSerpAPIKey},
		{"duckduckgo with rss needs no serp key", func(c *Config) {
			c.SerpAPIKey = ""
			c.SearchProvider = "duckduckgo"
			c.NewsSource = "rss"
		}, nil},
		{"missing openai key", func(c *Config) { c.OpenAIAPIKey = "" }, ErrMissingLLMKey},
		{"missing cohere key", func(c *Config) { c.LLMProvider = "cohere" }, ErrMissingLLMKey},
		{"ollama needs no key", func(c *Config) { c.LLMProvider = "ollama"; c.OpenAIAPIKey = "" }, nil},
		{"unknown llm", func(c *Config) { c.LLMProvider = "bard" }, ErrUnknownProvider},
		{"unknown fetcher", func(c *Config) { c.ScrapeFetcher = "curl" }, ErrUnknownProvider},
		{"negative delay", func(c *Config) { c.ScrapeDelay = -time.Second }, ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadConfigRejectsMalformedDuration(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"SCRAPE_DELAY", "1x"},
		{"SCRAPE_TIMEOUT", "fifteen"},
		{"SEARCH_TIMEOUT", "10"},
		{"LLM_TIMEOUT", "2m30"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			if !errors.Is(err, ErrInvalidDuration) {
				t.Fatalf("expected ErrInvalidDuration, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Errorf("expected error to name %s, got %v", tt.key, err)
			}
		})
	}
}

func TestLoadConfigParsesDurations(t *testing.T) {
	clearEnv(t)
	t.Setenv("SCRAPE_DELAY", "250ms")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.ScrapeDelay != 250*time.Millisecond {
		t.Errorf("expected 250ms delay, got %v", cfg.ScrapeDelay)
	}
}
