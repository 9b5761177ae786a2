package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"

	"github.com/jhoicas/pipeline-crm/internal/application/ports"
)

var _ ports.FollowUpSuggester = (*OpenAIService)(nil)

// OpenAIService drafts follow-ups through the OpenAI Responses API using the official SDK.
type OpenAIService struct {
	client  *openai.Client
	model   string
	company string
	enabled bool
}

// NewOpenAIService builds the adapter. Extra request options (base URL, HTTP client) are
// passed straight to the SDK.
func NewOpenAIService(apiKey, model, company string, opts ...option.RequestOption) *OpenAIService {
	if model == "" {
		model = string(shared.ChatModelGPT4oMini)
	}
	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &OpenAIService{client: &client, model: model, company: company, enabled: apiKey != ""}
}

// SuggestFollowUp asks the configured model for a follow-up message.
func (s *OpenAIService) SuggestFollowUp(ctx context.Context, snapshot ports.FollowUpSnapshot) (string, error) {
	if !s.enabled {
		return "", fmt.Errorf("AI: OPENAI_API_KEY not configured")
	}
	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(s.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(BuildFollowUpPrompt(s.company, snapshot)),
		},
		Temperature: param.NewOpt(followUpTemperature),
	}

	resp, err := s.client.Responses.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("AI: openai responses error: %w", err)
	}
	text := strings.TrimSpace(resp.OutputText())
	if text == "" {
		return "", fmt.Errorf("AI: OpenAI returned an empty response")
	}
	return text, nil
}
