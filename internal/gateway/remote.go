package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"healing-companion-service/internal/domain"
)

// RemoteClient talks to the companion backend over HTTP. It plugs in both
// as a ResultSink (POST /api/quiz/submit) and as a suggestion loader for
// the caching repositories (GET /api/content/{level}).
type RemoteClient struct {
	baseURL string
	client  *http.Client
}

func NewRemoteClient(baseURL string, timeout time.Duration) *RemoteClient {
	return &RemoteClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// SaveResult posts the payload to the backend. Any transport error or
// non-2xx status is reported as a retryable ErrSubmitRejected.
func (c *RemoteClient) SaveResult(ctx context.Context, payload domain.ResultPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/quiz/submit", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSubmitRejected, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", domain.ErrSubmitRejected, resp.StatusCode)
	}
	return nil
}

// contentEnvelope matches the backend's response shape:
// {"content": {"title": ..., "bullets": [...], "actions": [...]}}
type contentEnvelope struct {
	Content domain.Suggestions `json:"content"`
}

// LoadSuggestions fetches the content block for a level.
func (c *RemoteClient) LoadSuggestions(ctx context.Context, level domain.Level) (domain.Suggestions, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/content/"+string(level), nil)
	if err != nil {
		return domain.Suggestions{}, fmt.Errorf("build content request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.Suggestions{}, fmt.Errorf("fetch suggestions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.Suggestions{}, domain.ErrLevelNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Suggestions{}, fmt.Errorf("fetch suggestions: status %d", resp.StatusCode)
	}

	var envelope contentEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return domain.Suggestions{}, fmt.Errorf("decode suggestions: %w", err)
	}
	return envelope.Content, nil
}
