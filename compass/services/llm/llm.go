// compass/services/llm/llm.go
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"compass/compass/config"
	httputils "compass/compass/utils/http"
	"compass/compass/utils/logging"
)

// Completer runs one non-streaming chat completion and returns the text.
type Completer interface {
	Run(ctx context.Context, req ChatRequest) (string, error)
}

type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SystemAndUser returns the split of a request into its system preamble
// and the concatenated user content, for APIs that take them separately.
func (r ChatRequest) SystemAndUser() (string, string) {
	var system, user []string
	for _, m := range r.Messages {
		if m.Role == "system" {
			system = append(system, m.Content)
		} else {
			user = append(user, m.Content)
		}
	}
	return strings.Join(system, "\n"), strings.Join(user, "\n")
}

// NewFromConfig returns the client selected by cfg.LLMProvider.
func NewFromConfig(cfg config.Config) (Completer, error) {
	switch cfg.LLMProvider {
	case "openai", "":
		return NewGPTClient(cfg.OpenAIAPIKey, cfg.LLMBaseURL, cfg.LLMTimeout), nil
	case "groq":
		return NewGroqClient(cfg.GroqAPIKey, cfg.LLMBaseURL, cfg.LLMTimeout), nil
	case "ollama":
		return NewOllamaClient(cfg.LLMBaseURL, cfg.LLMTimeout), nil
	case "cohere":
		return NewCohereClient(cfg.CohereAPIKey, cfg.LLMTimeout), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
}

type OllamaClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewOllamaClient(baseURL string, timeout time.Duration) *OllamaClient {
	if baseURL == "" {
		baseURL = "http://localhost:11434/api"
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &OllamaClient{baseURL: strings.TrimRight(baseURL, "/"), httpClient: &http.Client{Timeout: timeout}}
}

type ollamaChatRequest struct {
	Model    string         `json:"model"`
	Messages []Message      `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

type ollamaChatResponse struct {
	Message Message `json:"message"`
	Done    bool    `json:"done"`
}

func (c *OllamaClient) Run(ctx context.Context, req ChatRequest) (string, error) {
	defer logging.LogDuration(ctx, "ollama_service_run")()

	body := ollamaChatRequest{
		Model:    req.Model,
		Messages: req.Messages,
		Stream:   false,
		Options: map[string]any{
			"temperature": req.Temperature,
		},
	}
	if req.MaxTokens > 0 {
		body.Options["num_predict"] = req.MaxTokens
	}

	var resp ollamaChatResponse
	if err := httputils.PostJSON(ctx, c.httpClient, c.baseURL+"/chat", body, &resp); err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	return resp.Message.Content, nil
}
