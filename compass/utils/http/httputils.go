// compass/utils/http/httputils.go
package httputils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// StatusError is returned when a server answers with an unexpected status.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("bad status: %s", e.Status)
	}
	return fmt.Sprintf("bad status: %s - %s", e.Status, e.Body)
}

func newStatusError(r *http.Response) *StatusError {
	b, _ := io.ReadAll(io.LimitReader(r.Body, 4096))
	return &StatusError{Code: r.StatusCode, Status: r.Status, Body: string(b)}
}

func clientOrDefault(c *http.Client) *http.Client {
	if c == nil {
		return http.DefaultClient
	}
	return c
}

// GetJSON issues a GET with params and decodes a 200 response into resp.
func GetJSON(ctx context.Context, client *http.Client, rawURL string, params url.Values, resp interface{}) error {
	u := rawURL
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	r, err := clientOrDefault(client).Do(req)
	if err != nil {
		return err
	}
	defer r.Body.Close()
	if r.StatusCode != http.StatusOK {
		return newStatusError(r)
	}
	if resp != nil {
		return json.NewDecoder(r.Body).Decode(resp)
	}
	return nil
}

func PostJSON(ctx context.Context, client *http.Client, url string, body interface{}, resp interface{}) error {
	return PostJSONWithAuth(ctx, client, url, "", body, resp)
}

// PostJSONWithAuth posts body as JSON with an optional Bearer token.
func PostJSONWithAuth(ctx context.Context, client *http.Client, url, apiKey string, body interface{}, resp interface{}) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	r, err := clientOrDefault(client).Do(req)
	if err != nil {
		return err
	}
	defer r.Body.Close()
	if r.StatusCode != http.StatusOK {
		return newStatusError(r)
	}
	if resp != nil {
		return json.NewDecoder(r.Body).Decode(resp)
	}
	return nil
}
