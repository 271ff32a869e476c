package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// SendResult is the provider's answer to one SMS request.
type SendResult struct {
	Accepted  bool
	RequestID string
}

// Client calls the Fast2SMS bulk endpoint.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	Skip    bool
}

// New creates a client with a bounded timeout. With skip set the client
// fakes successful deliveries, for dev without an API key.
func New(baseURL, apiKey string, timeout time.Duration, skip bool) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Skip:    skip,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// Send delivers one message to one number over the quick route.
func (c *Client) Send(ctx context.Context, phone, message string) (*SendResult, error) {
	if c.Skip {
		return &SendResult{Accepted: true, RequestID: "mock-" + uuid.NewString()}, nil
	}
	if phone == "" {
		return nil, fmt.Errorf("parent phone required")
	}

	body, _ := json.Marshal(map[string]string{
		"route":    "q",
		"message":  message,
		"language": "english",
		"numbers":  phone,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/bulkV2", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("authorization", c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sms provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("sms provider error %s: %s", resp.Status, string(bodyBytes))
	}

	var out struct {
		Return    bool   `json:"return"`
		RequestID string `json:"request_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}

	return &SendResult{Accepted: out.Return, RequestID: out.RequestID}, nil
}
