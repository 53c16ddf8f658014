// compass/services/llm/groq_client.go
package llm

import (
	"time"
)

// NewGroqClient returns a client pointing to Groq's OpenAI-compatible chat endpoint.
func NewGroqClient(apiKey, baseURL string, timeout time.Duration) *GPTClient {
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}
	return NewGPTClient(apiKey, baseURL, timeout)
}
