package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/pipeline-crm/internal/application/ports"
)

var _ ports.FollowUpSuggester = (*AnthropicService)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
)

// AnthropicService drafts follow-ups through the Anthropic Messages API over plain net/http.
type AnthropicService struct {
	apiKey     string
	model      string
	company    string
	endpoint   string
	httpClient *http.Client
}

// NewAnthropicService builds the adapter. An empty apiKey makes every call fail with a
// descriptive error instead of reaching the network.
func NewAnthropicService(apiKey, model, company string) *AnthropicService {
	return &AnthropicService{
		apiKey:   apiKey,
		model:    model,
		company:  company,
		endpoint: anthropicMessagesURL,
		httpClient: &http.Client{
			// network ceiling; the use case applies its own shorter deadline
			Timeout: 25 * time.Second,
		},
	}
}

// WithEndpoint points the adapter at another URL (test servers, proxies).
func (s *AnthropicService) WithEndpoint(url string) *AnthropicService {
	s.endpoint = url
	return s
}

// ── Anthropic Messages API wire types ─────────────────────────────────────────

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// SuggestFollowUp sends the customer snapshot to Claude and returns the drafted message.
func (s *AnthropicService) SuggestFollowUp(ctx context.Context, snapshot ports.FollowUpSnapshot) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: ANTHROPIC_API_KEY not configured")
	}

	payload := anthropicRequest{
		Model:       s.model,
		MaxTokens:   512,
		Temperature: followUpTemperature,
		Messages: []anthropicMessage{
			{Role: "user", Content: BuildFollowUpPrompt(s.company, snapshot)},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("AI: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: build HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout or cancellation: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: HTTP call failed: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("AI: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp anthropicResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: Anthropic error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI: Anthropic HTTP %d", resp.StatusCode)
	}

	var anthResp anthropicResponse
	if err := json.Unmarshal(rawBody, &anthResp); err != nil {
		return "", fmt.Errorf("AI: decode Anthropic response: %w", err)
	}

	var out strings.Builder
	for _, c := range anthResp.Content {
		if c.Type == "text" {
			out.WriteString(c.Text)
		}
	}
	text := strings.TrimSpace(out.String())
	if text == "" {
		return "", fmt.Errorf("AI: Claude returned an empty response")
	}
	return text, nil
}
