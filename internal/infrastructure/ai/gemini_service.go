package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/pipeline-crm/internal/application/ports"
)

var _ ports.FollowUpSuggester = (*GeminiService)(nil)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/"

// GeminiService drafts follow-ups through the Gemini generateContent REST endpoint.
type GeminiService struct {
	apiKey     string
	model      string
	company    string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiService builds the adapter. model is usually "gemini-2.5-flash".
func NewGeminiService(apiKey, model, company string) *GeminiService {
	return &GeminiService{
		apiKey:  apiKey,
		model:   model,
		company: company,
		baseURL: geminiBaseURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// WithBaseURL replaces the models endpoint prefix (must end with "/").
func (s *GeminiService) WithBaseURL(u string) *GeminiService {
	s.baseURL = u
	return s
}

// ── Gemini wire types ─────────────────────────────────────────────────────────

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig genConfig       `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type genConfig struct {
	Temperature     float32 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SuggestFollowUp asks Gemini for a follow-up message.
func (s *GeminiService) SuggestFollowUp(ctx context.Context, snapshot ports.FollowUpSnapshot) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: GEMINI_API_KEY not configured")
	}

	payload := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: BuildFollowUpPrompt(s.company, snapshot)}},
		}},
		GenerationConfig: genConfig{
			Temperature:     followUpTemperature,
			MaxOutputTokens: 512,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("AI: encode request: %w", err)
	}

	endpoint := s.baseURL + url.PathEscape(s.model) + ":generateContent?key=" + url.QueryEscape(s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: build HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

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
		var errResp geminiResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: Gemini error %d: %s", errResp.Error.Code, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI: Gemini HTTP %d", resp.StatusCode)
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(rawBody, &gemResp); err != nil {
		return "", fmt.Errorf("AI: decode Gemini response: %w", err)
	}
	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("AI: Gemini returned an empty response")
	}

	var out strings.Builder
	for _, p := range gemResp.Candidates[0].Content.Parts {
		out.WriteString(p.Text)
	}
	return strings.TrimSpace(out.String()), nil
}
