package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WebhookClient posts stock alert reports to an external endpoint (ops chat
// integration, monitoring, etc.). Failures here never affect order
// processing — the worker pool retries and dead-letters on its own.
type WebhookClient struct {
	url        string
	httpClient *http.Client
}

func NewWebhookClient(url string) *WebhookClient {
	return &WebhookClient{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether a webhook URL is configured.
func (c *WebhookClient) Enabled() bool { return c.url != "" }

// Notify POSTs the payload as JSON and fails on any non-2xx status.
func (c *WebhookClient) Notify(ctx context.Context, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("webhook: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook: endpoint returned %d", resp.StatusCode)
	}
	return nil
}
