package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/pipeline-crm/internal/domain"
)

// Customer is the aggregate root of the CRM: a prospect or client moving through the pipeline.
// It exclusively owns its notes, quotations and stage history.
type Customer struct {
	ID               string
	Name             string
	Phone            string
	Location         string
	BusinessType     BusinessType
	DailyProduction  int // kg/day
	Stage            Stage
	Notes            []Note      // newest first
	Quotations       []Quotation // newest first
	StageHistory     []StageHistoryEntry
	LastContacted    time.Time
	CreatedAt        time.Time
	StageChangedAt   time.Time
	NextFollowUpDate *time.Time
}

// Note is a free-text interaction record. CreatedAt is chosen by the user and may be backdated.
type Note struct {
	ID        string
	Content   string
	CreatedAt time.Time
}

// StageHistoryEntry is an append-only audit record. From is nil only for the creation entry.
type StageHistoryEntry struct {
	From      *Stage
	To        Stage
	ChangedAt time.Time
}

// CustomerDetails are the user-editable descriptive fields of a customer.
type CustomerDetails struct {
	Name            string
	Phone           string
	Location        string
	BusinessType    BusinessType
	DailyProduction int
}

// Validate trims text fields in place and checks required values and enumerations.
func (d *CustomerDetails) Validate() error {
	d.Name = strings.TrimSpace(d.Name)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Location = strings.TrimSpace(d.Location)
	if d.Name == "" || d.Phone == "" || d.Location == "" {
		return domain.Validationf("name, phone and location are required")
	}
	if d.DailyProduction <= 0 {
		return domain.Validationf("daily production must be a positive number")
	}
	if !d.BusinessType.Valid() {
		return domain.Validationf("invalid business type %q", d.BusinessType)
	}
	return nil
}

// NewCustomerInput carries the required fields for creating a customer.
type NewCustomerInput struct {
	CustomerDetails
	Stage Stage
}

// NewCustomer builds a freshly created customer. The creation itself is recorded as the
// first stage-history entry {nil -> stage}.
func NewCustomer(in NewCustomerInput, id string, now time.Time) (*Customer, error) {
	if err := in.CustomerDetails.Validate(); err != nil {
		return nil, err
	}
	if !in.Stage.Valid() {
		return nil, domain.Validationf("invalid stage %q", in.Stage)
	}
	return &Customer{
		ID:              id,
		Name:            in.Name,
		Phone:           in.Phone,
		Location:        in.Location,
		BusinessType:    in.BusinessType,
		DailyProduction: in.DailyProduction,
		Stage:           in.Stage,
		Notes:           []Note{},
		Quotations:      []Quotation{},
		StageHistory:    []StageHistoryEntry{{From: nil, To: in.Stage, ChangedAt: now}},
		LastContacted:   now,
		CreatedAt:       now,
		StageChangedAt:  now,
	}, nil
}

// Details returns the editable fields.
func (c *Customer) Details() CustomerDetails {
	return CustomerDetails{
		Name:            c.Name,
		Phone:           c.Phone,
		Location:        c.Location,
		BusinessType:    c.BusinessType,
		DailyProduction: c.DailyProduction,
	}
}

// QuotationIndex returns the position of the quotation with the given id, or -1.
func (c *Customer) QuotationIndex(id string) int {
	for i := range c.Quotations {
		if c.Quotations[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy; no slice or pointer is shared with the receiver.
func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	out := *c
	out.Notes = append([]Note(nil), c.Notes...)
	if out.Notes == nil {
		out.Notes = []Note{}
	}
	out.Quotations = make([]Quotation, len(c.Quotations))
	for i := range c.Quotations {
		out.Quotations[i] = c.Quotations[i].Clone()
	}
	out.StageHistory = make([]StageHistoryEntry, len(c.StageHistory))
	for i, h := range c.StageHistory {
		out.StageHistory[i] = h
		if h.From != nil {
			from := *h.From
			out.StageHistory[i].From = &from
		}
	}
	if c.NextFollowUpDate != nil {
		t := *c.NextFollowUpDate
		out.NextFollowUpDate = &t
	}
	return &out
}
