package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Validation errors.
var (
	ErrMissingSerpAPIKey = errors.New("SERP_API_KEY is required for the serpapi search provider or news source")
	ErrMissingLLMKey     = errors.New("an API key is required for the selected LLM provider")
	ErrUnknownProvider   = errors.New("unknown provider")
	ErrInvalidDuration   = errors.New("invalid duration")
)

// Config is built once at process entry and handed to every client constructor.
type Config struct {
	SerpAPIKey     string        `yaml:"serp_api_key"`
	SearchProvider string        `yaml:"search_provider"`
	SearchBaseURL  string        `yaml:"search_base_url"`
	SearchTimeout  time.Duration `yaml:"search_timeout"`
	NewsSource     string        `yaml:"news_source"`
	NewsFeedURL    string        `yaml:"news_feed_url"`

	LLMProvider  string        `yaml:"llm_provider"`
	LLMModel     string        `yaml:"llm_model"`
	LLMBaseURL   string        `yaml:"llm_base_url"`
	LLMTimeout   time.Duration `yaml:"llm_timeout"`
	OpenAIAPIKey string        `yaml:"openai_api_key"`
	GroqAPIKey   string        `yaml:"groq_api_key"`
	CohereAPIKey string        `yaml:"cohere_api_key"`

	ScrapeFetcher  string        `yaml:"scrape_fetcher"`
	ScrapeBodyMode string        `yaml:"scrape_body_mode"`
	ScrapeTimeout  time.Duration `yaml:"scrape_timeout"`
	ScrapeDelay    time.Duration `yaml:"scrape_delay"`

	ServerAddr string `yaml:"server_addr"`
	LogDir     string `yaml:"log_dir"`
}

// LoadConfig reads .env (if present), the environment and the optional YAML
// file named by COMPASS_CONFIG. Values in the YAML file win.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var errs []error
	getDuration := func(key string, fallback time.Duration) time.Duration {
		d, err := parseDuration(key, fallback)
		if err != nil {
			errs = append(errs, err)
		}
		return d
	}

	cfg := Config{
		SerpAPIKey:     getEnv("", "SERP_API_KEY", "serp_api_key"),
		SearchProvider: getEnv("serpapi", "SEARCH_PROVIDER"),
		SearchBaseURL:  getEnv("https://serpapi.com", "SEARCH_BASE_URL"),
		SearchTimeout:  getDuration("SEARCH_TIMEOUT", 10*time.Second),
		NewsSource:     getEnv("serpapi", "NEWS_SOURCE"),
		NewsFeedURL:    getEnv("https://news.google.com/rss/search", "NEWS_FEED_URL"),

		LLMProvider:  getEnv("openai", "LLM_PROVIDER"),
		LLMModel:     getEnv("", "LLM_MODEL"),
		LLMBaseURL:   getEnv("", "LLM_BASE_URL"),
		LLMTimeout:   getDuration("LLM_TIMEOUT", 120*time.Second),
		OpenAIAPIKey: getEnv("", "OPENAI_API_KEY", "openai_api_key"),
		GroqAPIKey:   getEnv("", "GROQ_API_KEY"),
		CohereAPIKey: getEnv("", "COHERE_API_KEY"),

		ScrapeFetcher:  getEnv("http", "SCRAPE_FETCHER"),
		ScrapeBodyMode: getEnv("paragraphs", "SCRAPE_BODY_MODE"),
		ScrapeTimeout:  getDuration("SCRAPE_TIMEOUT", 15*time.Second),
		ScrapeDelay:    getDuration("SCRAPE_DELAY", time.Second),

		ServerAddr: getEnv(":8000", "SERVER_ADDR"),
		LogDir:     getEnv("./logs", "LOG_DIR"),
	}
	if err := errors.Join(errs...); err != nil {
		return cfg, err
	}

	if path := os.Getenv("COMPASS_CONFIG"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return cfg, err
		}
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = defaultModel(cfg.LLMProvider)
	}
	return cfg, nil
}

func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// Validate checks that every selected provider has what it needs.
func (c Config) Validate() error {
	switch c.SearchProvider {
	case "serpapi":
		if c.SerpAPIKey == "" {
			return ErrMissingSerpAPIKey
		}
	case "duckduckgo":
	default:
		return fmt.Errorf("%w: search_provider %q", ErrUnknownProvider, c.SearchProvider)
	}

	switch c.NewsSource {
	case "serpapi":
		if c.SerpAPIKey == "" {
			return ErrMissingSerpAPIKey
		}
	case "rss":
	default:
		return fmt.Errorf("%w: news_source %q", ErrUnknownProvider, c.NewsSource)
	}

	switch c.LLMProvider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("%w: OPENAI_API_KEY", ErrMissingLLMKey)
		}
	case "groq":
		if c.GroqAPIKey == "" {
			return fmt.Errorf("%w: GROQ_API_KEY", ErrMissingLLMKey)
		}
	case "cohere":
		if c.CohereAPIKey == "" {
			return fmt.Errorf("%w: COHERE_API_KEY", ErrMissingLLMKey)
		}
	case "ollama":
	default:
		return fmt.Errorf("%w: llm_provider %q", ErrUnknownProvider, c.LLMProvider)
	}

	switch c.ScrapeFetcher {
	case "http", "browser":
	default:
		return fmt.Errorf("%w: scrape_fetcher %q", ErrUnknownProvider, c.ScrapeFetcher)
	}
	switch c.ScrapeBodyMode {
	case "paragraphs", "readability":
	default:
		return fmt.Errorf("%w: scrape_body_mode %q", ErrUnknownProvider, c.ScrapeBodyMode)
	}

	if c.SearchTimeout < 0 || c.LLMTimeout < 0 || c.ScrapeTimeout < 0 || c.ScrapeDelay < 0 {
		return ErrInvalidDuration
	}
	return nil
}

func defaultModel(provider string) string {
	switch provider {
	case "groq":
		return "llama-3.1-8b-instant"
	case "ollama":
		return "llama3:8b"
	case "cohere":
		return "command-r"
	default:
		return "gpt-4"
	}
}

// getEnv returns the first non-empty variable among keys, or fallback.
func getEnv(fallback string, keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return fallback
}

// parseDuration reads key as a Go duration ("1s", "500ms"). Unset means fallback.
func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback, fmt.Errorf("%w: %s=%q", ErrInvalidDuration, key, value)
	}
	return d, nil
}
