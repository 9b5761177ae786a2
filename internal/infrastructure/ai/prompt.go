package ai

import (
	"fmt"
	"strings"

	"github.com/jhoicas/pipeline-crm/internal/application/ports"
)

// followUpTemperature keeps drafts varied without drifting off topic.
const followUpTemperature = 0.7

// BuildFollowUpPrompt renders the instruction sent to every provider.
func BuildFollowUpPrompt(company string, s ports.FollowUpSnapshot) string {
	var history strings.Builder
	for _, n := range s.Notes {
		fmt.Fprintf(&history, "- %s (On %s)\n", n.Content, n.Date.Format("02/01/2006"))
	}
	notes := strings.TrimRight(history.String(), "\n")
	if notes == "" {
		notes = "No notes available."
	}

	return fmt.Sprintf(`You are a helpful assistant for a sales representative at %q, a company that sells food processing machinery like murukku and snacks makers.
Your task is to generate a polite and professional follow-up message (in English) for a customer.

Customer Details:
- Name: %s
- Business Type: %s
- Location: %s
- Current Pipeline Stage: %s

Previous Communications (Notes):
%s

Based on this information, generate a short, effective, and friendly follow-up message to continue the conversation.
The goal is to move the customer to the next stage of the pipeline. Do not include greetings like "Dear [Name]". Just provide the message content.`,
		company, s.Name, s.BusinessType, s.Location, s.Stage, notes)
}
