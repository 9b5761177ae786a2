package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/application/ports"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/repository"
	"github.com/jhoicas/pipeline-crm/pkg/logger"
)

// FallbackFollowUpMessage is returned whenever the provider cannot produce a draft.
const FallbackFollowUpMessage = "Sorry, I couldn't generate a message at this time. Please check the API key and configuration."

// DefaultAITimeout bounds every provider call.
const DefaultAITimeout = 10 * time.Second

// AIUseCase drafts follow-up messages. Provider failures never reach the caller: they are
// logged and replaced by FallbackFollowUpMessage.
type AIUseCase struct {
	llm     ports.FollowUpSuggester
	repo    repository.CustomerRepository
	log     *logger.Logger
	timeout time.Duration
}

// NewAIUseCase builds the use case. llm may be nil when no provider is configured.
func NewAIUseCase(llm ports.FollowUpSuggester, repo repository.CustomerRepository, log *logger.Logger) *AIUseCase {
	return &AIUseCase{llm: llm, repo: repo, log: log, timeout: DefaultAITimeout}
}

// WithTimeout overrides the provider deadline.
func (uc *AIUseCase) WithTimeout(d time.Duration) *AIUseCase {
	uc.timeout = d
	return uc
}

// SuggestFollowUp drafts a message for the customer. Only an unknown customer or a store
// failure is reported as an error.
func (uc *AIUseCase) SuggestFollowUp(ctx context.Context, customerID string) (*dto.FollowUpSuggestionResponse, error) {
	c, err := uc.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("ai: load customer: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: customer %s", domain.ErrNotFound, customerID)
	}

	snapshot := ports.FollowUpSnapshot{
		Name:         c.Name,
		BusinessType: string(c.BusinessType),
		Location:     c.Location,
		Stage:        c.Stage.Label(),
		Notes:        make([]ports.NoteSnapshot, 0, len(c.Notes)),
	}
	for _, n := range c.Notes {
		snapshot.Notes = append(snapshot.Notes, ports.NoteSnapshot{Content: n.Content, Date: n.CreatedAt})
	}

	if uc.llm == nil {
		uc.log.Warn().Str("customer_id", customerID).Msg("ai: no provider configured")
		return &dto.FollowUpSuggestionResponse{Message: FallbackFollowUpMessage, Fallback: true}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	msg, err := uc.llm.SuggestFollowUp(ctx, snapshot)
	if err == nil && strings.TrimSpace(msg) == "" {
		err = fmt.Errorf("empty suggestion")
	}
	if err != nil {
		uc.log.Error().Err(err).Str("customer_id", customerID).Msg("ai: follow-up suggestion failed")
		return &dto.FollowUpSuggestionResponse{Message: FallbackFollowUpMessage, Fallback: true}, nil
	}
	return &dto.FollowUpSuggestionResponse{Message: strings.TrimSpace(msg)}, nil
}
