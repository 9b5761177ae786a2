package dto

import "time"

// CreateCustomerRequest body for POST /api/customers.
type CreateCustomerRequest struct {
	Name            string `json:"name" validate:"required,max=200"`
	Phone           string `json:"phone" validate:"required,max=30"`
	Location        string `json:"location" validate:"required,max=200"`
	BusinessType    string `json:"business_type" validate:"required,oneof=Murukku Snacks"`
	DailyProduction int    `json:"daily_production" validate:"required,gt=0"`
	Stage           string `json:"stage" validate:"omitempty"` // defaults to Enquiry
}

// UpdateCustomerRequest body for PUT /api/customers/:id.
type UpdateCustomerRequest struct {
	Name            string `json:"name" validate:"required,max=200"`
	Phone           string `json:"phone" validate:"required,max=30"`
	Location        string `json:"location" validate:"required,max=200"`
	BusinessType    string `json:"business_type" validate:"required,oneof=Murukku Snacks"`
	DailyProduction int    `json:"daily_production" validate:"required,gt=0"`
}

// ChangeStageRequest body for PUT /api/customers/:id/stage.
type ChangeStageRequest struct {
	Stage string `json:"stage" validate:"required"`
}

// AddNoteRequest body for POST /api/customers/:id/notes. Date may be backdated; empty
// means now.
type AddNoteRequest struct {
	Content          string     `json:"content" validate:"required"`
	Date             *time.Time `json:"date,omitempty"`
	NextFollowUpDate *time.Time `json:"next_follow_up_date,omitempty"`
}

// CustomerListQuery filters for GET /api/customers and GET /api/export.
type CustomerListQuery struct {
	Stages  string `query:"stages"`  // comma separated
	Pending bool   `query:"pending"` // idle longer than the follow-up threshold
	Created string `query:"created" validate:"omitempty,oneof=all today yesterday week month"`
	Sort    string `query:"sort"`
	Dir     string `query:"dir" validate:"omitempty,oneof=asc desc ascending descending"`
}

// CustomerResponse full customer record.
type CustomerResponse struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	Phone            string                 `json:"phone"`
	Location         string                 `json:"location"`
	BusinessType     string                 `json:"business_type"`
	DailyProduction  int                    `json:"daily_production"`
	Stage            string                 `json:"stage"`
	StageLabel       string                 `json:"stage_label"`
	LastContacted    time.Time              `json:"last_contacted"`
	CreatedAt        time.Time              `json:"created_at"`
	StageChangedAt   time.Time              `json:"stage_changed_at"`
	NextFollowUpDate *time.Time             `json:"next_follow_up_date"`
	Notes            []NoteResponse         `json:"notes"`
	Quotations       []QuotationResponse    `json:"quotations"`
	StageHistory     []StageHistoryResponse `json:"stage_history"`
}

// NoteResponse note in responses.
type NoteResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// StageHistoryResponse audit entry; From is null for the creation entry.
type StageHistoryResponse struct {
	From      *string   `json:"from"`
	To        string    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}

// CustomerSummaryDTO compact customer for dashboards and reports.
type CustomerSummaryDTO struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Phone            string     `json:"phone"`
	Location         string     `json:"location"`
	Stage            string     `json:"stage"`
	LastContacted    time.Time  `json:"last_contacted"`
	StageChangedAt   time.Time  `json:"stage_changed_at"`
	NextFollowUpDate *time.Time `json:"next_follow_up_date,omitempty"`
}

// FollowUpSuggestionResponse body of POST /api/customers/:id/follow-up-suggestion.
// Fallback is true when the provider failed and Message is the canned apology.
type FollowUpSuggestionResponse struct {
	Message  string `json:"message"`
	Fallback bool   `json:"fallback"`
}

// ImportResponse result of a bulk import.
type ImportResponse struct {
	Imported  int                `json:"imported"`
	Customers []CustomerResponse `json:"customers"`
}
