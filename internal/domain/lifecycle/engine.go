// Package lifecycle holds the customer state transitions. Every operation is pure: it takes
// a customer, validates the request and returns an updated copy without touching the input.
package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/ledger"
)

// Engine applies lifecycle operations using an injected clock and id source.
type Engine struct {
	clock   domain.Clock
	ids     func() string
	numbers *ledger.NumberGenerator
}

// Option configures an Engine.
type Option func(*Engine)

// WithIDs overrides the id source (uuid by default).
func WithIDs(ids func() string) Option {
	return func(e *Engine) { e.ids = ids }
}

// WithNumbers overrides the quotation number generator.
func WithNumbers(g *ledger.NumberGenerator) Option {
	return func(e *Engine) { e.numbers = g }
}

// NewEngine creates an engine. A nil clock means the system clock.
func NewEngine(clock domain.Clock, opts ...Option) *Engine {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	e := &Engine{
		clock:   clock,
		ids:     uuid.NewString,
		numbers: ledger.NewNumberGenerator(""),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Now exposes the engine clock so callers stamp records consistently.
func (e *Engine) Now() time.Time { return e.clock.Now() }

// ── Stage ─────────────────────────────────────────────────────────────────────

// ChangeStage moves the customer to stage. Moving to the current stage is a no-op and
// records no history.
func (e *Engine) ChangeStage(c *entity.Customer, stage entity.Stage) (*entity.Customer, error) {
	if !stage.Valid() {
		return nil, domain.Validationf("invalid stage %q", stage)
	}
	out := c.Clone()
	if out.Stage == stage {
		return out, nil
	}
	e.moveStage(out, stage, e.clock.Now())
	return out, nil
}

func (e *Engine) moveStage(c *entity.Customer, stage entity.Stage, now time.Time) {
	from := c.Stage
	c.StageHistory = append(c.StageHistory, entity.StageHistoryEntry{From: &from, To: stage, ChangedAt: now})
	c.Stage = stage
	c.StageChangedAt = now
	c.LastContacted = now
}

// ── Notes ─────────────────────────────────────────────────────────────────────

// AddNote prepends a note dated entryDate (now when zero). The contact time is always the
// real current time; the next follow-up is replaced by nextFollowUp, which may be nil.
func (e *Engine) AddNote(c *entity.Customer, content string, entryDate time.Time, nextFollowUp *time.Time) (*entity.Customer, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.Validationf("note content is required")
	}
	now := e.clock.Now()
	if entryDate.IsZero() {
		entryDate = now
	}
	out := c.Clone()
	note := entity.Note{ID: e.ids(), Content: content, CreatedAt: entryDate}
	out.Notes = append([]entity.Note{note}, out.Notes...)
	out.LastContacted = now
	if nextFollowUp != nil {
		t := *nextFollowUp
		out.NextFollowUpDate = &t
	} else {
		out.NextFollowUpDate = nil
	}
	return out, nil
}

// ── Details ───────────────────────────────────────────────────────────────────

// UpdateDetails replaces the descriptive fields. Identity, stage, timestamps and owned
// collections are left untouched.
func (e *Engine) UpdateDetails(c *entity.Customer, d entity.CustomerDetails) (*entity.Customer, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	out := c.Clone()
	out.Name = d.Name
	out.Phone = d.Phone
	out.Location = d.Location
	out.BusinessType = d.BusinessType
	out.DailyProduction = d.DailyProduction
	return out, nil
}

// ── Quotations ────────────────────────────────────────────────────────────────

// LineItemInput is a line as submitted by the editor. An empty ID gets a fresh one.
type LineItemInput struct {
	ID          string
	Description string
	HSN         string
	Pcs         int
	Quantity    int
	Amount      decimal.Decimal
}

// QuotationInput is the editable part of a quotation.
type QuotationInput struct {
	// Number and Date keep the stored values on edit when empty. A new quotation gets a
	// generated number and the current time.
	Number    string
	Date      time.Time
	LineItems []LineItemInput
	// Status optionally overrides the status; only Draft and Sent are accepted.
	Status *entity.QuotationStatus
}

func (in QuotationInput) validate() error {
	if len(in.LineItems) == 0 {
		return domain.Validationf("a quotation needs at least one line item")
	}
	for i, it := range in.LineItems {
		switch {
		case strings.TrimSpace(it.Description) == "":
			return domain.Validationf("line %d: description is required", i+1)
		case it.Pcs < 1:
			return domain.Validationf("line %d: pcs must be at least 1", i+1)
		case it.Quantity < 1:
			return domain.Validationf("line %d: quantity must be at least 1", i+1)
		case it.Amount.IsNegative():
			return domain.Validationf("line %d: amount cannot be negative", i+1)
		}
	}
	if in.Status != nil && *in.Status != entity.QuotationDraft && *in.Status != entity.QuotationSent {
		return domain.Validationf("status %q cannot be set directly", *in.Status)
	}
	return nil
}

// SaveQuotation updates the quotation identified by existingID, or adds a new Draft one when
// existingID is empty or unknown. The net amount is always recomputed. Accepted quotations
// are settled and cannot be edited.
func (e *Engine) SaveQuotation(c *entity.Customer, in QuotationInput, existingID string) (*entity.Customer, *entity.Quotation, error) {
	if err := in.validate(); err != nil {
		return nil, nil, err
	}
	items := make([]entity.QuotationLineItem, len(in.LineItems))
	for i, it := range in.LineItems {
		id := it.ID
		if id == "" {
			id = e.ids()
		}
		items[i] = entity.QuotationLineItem{
			ID:          id,
			Description: strings.TrimSpace(it.Description),
			HSN:         strings.TrimSpace(it.HSN),
			Pcs:         it.Pcs,
			Quantity:    it.Quantity,
			Amount:      it.Amount,
		}
	}

	out := c.Clone()
	idx := -1
	if existingID != "" {
		idx = out.QuotationIndex(existingID)
	}
	if idx >= 0 {
		q := &out.Quotations[idx]
		if q.Status == entity.QuotationAccepted {
			return nil, nil, fmt.Errorf("%w: quotation %s is already accepted", domain.ErrConflict, q.QuotationNumber)
		}
		if number := strings.TrimSpace(in.Number); number != "" {
			q.QuotationNumber = number
		}
		if !in.Date.IsZero() {
			q.Date = in.Date
		}
		q.LineItems = items
		q.NetAmount = ledger.NetAmount(items)
		if in.Status != nil {
			q.Status = *in.Status
		}
		saved := q.Clone()
		return out, &saved, nil
	}

	date := in.Date
	if date.IsZero() {
		date = e.clock.Now()
	}
	number := strings.TrimSpace(in.Number)
	if number == "" {
		number = e.numbers.Next(date)
	}
	status := entity.QuotationDraft
	if in.Status != nil {
		status = *in.Status
	}
	q := entity.Quotation{
		ID:              e.ids(),
		QuotationNumber: number,
		Date:            date,
		LineItems:       items,
		NetAmount:       ledger.NetAmount(items),
		Status:          status,
	}
	out.Quotations = append([]entity.Quotation{q}, out.Quotations...)
	saved := q.Clone()
	return out, &saved, nil
}

// ConfirmOrder accepts the quotation and moves the customer to Booking unless already there.
// Confirming twice yields the same state as confirming once.
func (e *Engine) ConfirmOrder(c *entity.Customer, quotationID string) (*entity.Customer, error) {
	idx := c.QuotationIndex(quotationID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: quotation %s", domain.ErrNotFound, quotationID)
	}
	out := c.Clone()
	q := &out.Quotations[idx]
	if q.Status != entity.QuotationAccepted {
		q.NetAmount = ledger.NetAmount(q.LineItems)
		q.Status = entity.QuotationAccepted
	}
	if out.Stage != entity.StageBooking {
		e.moveStage(out, entity.StageBooking, e.clock.Now())
	}
	return out, nil
}
