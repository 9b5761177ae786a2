package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaveQuotationRequest body for creating or editing a quotation. An empty number gets an
// advisory one; a nil date means today.
type SaveQuotationRequest struct {
	QuotationNumber string            `json:"quotation_number" validate:"omitempty,max=50"`
	Date            *time.Time        `json:"date,omitempty"`
	LineItems       []LineItemRequest `json:"line_items" validate:"required,min=1,dive"`
	Status          string            `json:"status,omitempty" validate:"omitempty,oneof=Draft Sent"`
}

// LineItemRequest one quotation line. Amount is pre-tax.
type LineItemRequest struct {
	ID          string          `json:"id,omitempty"`
	Description string          `json:"description" validate:"required,max=500"`
	HSN         string          `json:"hsn" validate:"omitempty,max=20"`
	Pcs         int             `json:"pcs" validate:"min=1"`
	Quantity    int             `json:"quantity" validate:"min=1"`
	Amount      decimal.Decimal `json:"amount"`
}

// QuotationResponse quotation with its tax breakdown.
type QuotationResponse struct {
	ID              string             `json:"id"`
	QuotationNumber string             `json:"quotation_number"`
	Date            time.Time          `json:"date"`
	Status          string             `json:"status"`
	LineItems       []LineItemResponse `json:"line_items"`
	SubTotal        decimal.Decimal    `json:"sub_total"`
	CGST            decimal.Decimal    `json:"cgst"`
	SGST            decimal.Decimal    `json:"sgst"`
	NetAmount       decimal.Decimal    `json:"net_amount"`
}

// LineItemResponse line in responses.
type LineItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	HSN         string          `json:"hsn"`
	Pcs         int             `json:"pcs"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

// NextNumberResponse body of GET /api/quotations/next-number.
type NextNumberResponse struct {
	QuotationNumber string `json:"quotation_number"`
}
