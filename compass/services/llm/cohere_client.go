package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"compass/compass/utils/logging"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// CohereClient runs completions through the Cohere chat API.
type CohereClient struct {
	client *cohereclient.Client
}

func NewCohereClient(apiKey string, timeout time.Duration) *CohereClient {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	return &CohereClient{client: client}
}

func (c *CohereClient) Run(ctx context.Context, req ChatRequest) (string, error) {
	defer logging.LogDuration(ctx, "cohere_service_run")()

	system, user := req.SystemAndUser()
	chatReq := &cohere.ChatRequest{
		Message:     user,
		Temperature: cohere.Float64(req.Temperature),
	}
	if req.Model != "" {
		chatReq.Model = cohere.String(req.Model)
	}
	if system != "" {
		chatReq.Preamble = cohere.String(system)
	}
	if req.MaxTokens > 0 {
		chatReq.MaxTokens = cohere.Int(req.MaxTokens)
	}

	resp, err := c.client.Chat(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil || resp.Text == "" {
		return "", errors.New("cohere chat returned empty response")
	}
	return resp.Text, nil
}
