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
)

// HTTPClient sends greetings through an HTTP message provider. It POSTs a
// JSON payload to the configured endpoint and expects a JSON body carrying
// the provider-assigned message id.
type HTTPClient struct {
	url        string
	token      string
	httpClient *http.Client
}

func NewHTTPClient(url, token string) *HTTPClient {
	return &HTTPClient{
		url:   url,
		token: token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type sendRequest struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

type sendResponse struct {
	MessageID string `json:"message_id"`
}

// Send delivers body to phoneNumber. Provider rejections are returned with
// the provider's response text verbatim so it can be recorded on the
// greeting unchanged.
func (c *HTTPClient) Send(ctx context.Context, phoneNumber, body string) (string, error) {
	payload, err := json.Marshal(sendRequest{To: phoneNumber, Body: body})
	if err != nil {
		return "", fmt.Errorf("failed to encode send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := strings.TrimSpace(string(respBody))
		if text == "" {
			text = resp.Status
		}
		return "", fmt.Errorf("%s", text)
	}

	var parsed sendResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode provider response: %w", err)
	}
	if parsed.MessageID == "" {
		return "", fmt.Errorf("provider response missing message_id")
	}
	return parsed.MessageID, nil
}
