// Package sendchamp sends plain SMS through the SendChamp API. It is the
// fallback channel when WhatsApp delivery fails.
package sendchamp

import (
	"artisan/pkg/messaging"
	"artisan/pkg/serrors"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultBaseURL = "https://api.sendchamp.com"

// Client is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	apiKey     string
	senderName string
	baseURL    string
}

var _ messaging.SMSSender = (*Client)(nil)

// New constructs a Client. An empty baseURL uses the public API.
func New(httpClient *http.Client, apiKey, senderName, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		apiKey:     apiKey,
		senderName: senderName,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// SendSMS sends message over the DND route.
func (c *Client) SendSMS(ctx context.Context, phone, message string) (string, error) {
	to, err := messaging.E164(phone)
	if err != nil {
		return "", err
	}

	type sendReq struct {
		To         string `json:"to"`
		Message    string `json:"message"`
		SenderName string `json:"sender_name"`
		Route      string `json:"route"`
	}
	body, err := json.Marshal(sendReq{
		To:         strings.TrimPrefix(to, "+"),
		Message:    message,
		SenderName: c.senderName,
		Route:      "dnd",
	})
	if err != nil {
		return "", fmt.Errorf("could not marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/sms/send", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return "", serrors.With(serrors.ErrRateLimited, "rate limited: %s", strings.TrimSpace(string(b)))
	}

	var res struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Data    struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(b, &res); err != nil {
		return "", fmt.Errorf("could not decode response (status %d): %w", resp.StatusCode, err)
	}
	if res.Status != "success" {
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return "", serrors.With(serrors.ErrBadRequest, "sendchamp rejected sms: %s", res.Message)
		}

		return "", serrors.With(serrors.ErrUnavailable, "sendchamp failed: %s", res.Message)
	}

	return res.Data.ID, nil
}
