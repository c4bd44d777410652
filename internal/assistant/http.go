package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const httpTimeout = 30 * time.Second

// HTTPAssistant forwards prompts to a hosted completion endpoint.
type HTTPAssistant struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// NewHTTPAssistant creates an assistant backed by a single HTTP endpoint.
func NewHTTPAssistant(endpoint string, logger *zap.Logger) *HTTPAssistant {
	return &HTTPAssistant{
		endpoint: endpoint,
		client:   &http.Client{Timeout: httpTimeout},
		logger:   logger,
	}
}

type chatRequest struct {
	Prompt      string `json:"prompt"`
	RecruiterID string `json:"recruiter_id,omitempty"`
}

type chatResponse struct {
	Reply string `json:"reply"`
	Error string `json:"error,omitempty"`
}

// Reply submits the prompt and returns the reply string. Transport
// failures come back as ErrUnavailable; the endpoint's own error message
// is passed through when it sent one.
func (a *HTTPAssistant) Reply(ctx context.Context, prompt, recruiterID string) (string, error) {
	body, err := json.Marshal(chatRequest{Prompt: prompt, RecruiterID: recruiterID})
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		if a.logger != nil {
			a.logger.Warn("assistant transport failed", zap.Error(err))
		}
		return "", ErrUnavailable
	}
	defer resp.Body.Close()

	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		if a.logger != nil {
			a.logger.Warn("assistant sent undecodable response", zap.Error(err))
		}
		return "", ErrUnavailable
	}

	if resp.StatusCode != http.StatusOK {
		if payload.Error != "" {
			return "", fmt.Errorf("assistant: %s", payload.Error)
		}
		return "", ErrUnavailable
	}
	return payload.Reply, nil
}
