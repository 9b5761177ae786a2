package ports

import (
	"context"
	"time"
)

// FollowUpSuggester is the outbound port for text-generation providers (Anthropic, Gemini,
// OpenAI, fakes). The application layer only knows this contract.
type FollowUpSuggester interface {
	// SuggestFollowUp drafts a short follow-up message for the customer. The context carries
	// the caller's deadline; adapters must honour it.
	SuggestFollowUp(ctx context.Context, snapshot FollowUpSnapshot) (string, error)
}

// FollowUpSnapshot is the read-only view of a customer handed to a provider.
type FollowUpSnapshot struct {
	Name         string
	BusinessType string
	Location     string
	Stage        string
	Notes        []NoteSnapshot // newest first
}

// NoteSnapshot is one entry of the note history.
type NoteSnapshot struct {
	Content string
	Date    time.Time
}
