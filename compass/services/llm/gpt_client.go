package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	httputils "compass/compass/utils/http"
	"compass/compass/utils/logging"
)

// GPTClient talks to OpenAI-compatible chat completion endpoints.
type GPTClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGPTClient targets OpenAI unless baseURL is set.
func NewGPTClient(apiKey, baseURL string, timeout time.Duration) *GPTClient {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &GPTClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type gptResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Run executes a single GPT completion request (non-streaming)
func (c *GPTClient) Run(ctx context.Context, req ChatRequest) (string, error) {
	defer logging.LogDuration(ctx, "gpt_service_run")()

	var parsed gptResponse
	if err := httputils.PostJSONWithAuth(ctx, c.httpClient, c.baseURL+"/chat/completions", c.apiKey, req, &parsed); err != nil {
		var se *httputils.StatusError
		if errors.As(err, &se) {
			return "", fmt.Errorf("GPT request failed: %s - %s", se.Status, se.Body)
		}
		return "", fmt.Errorf("GPT request failed: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("GPT returned error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) > 0 {
		return parsed.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("no content in GPT response")
}
