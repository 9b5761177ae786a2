package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuotationStatus is the lifecycle state of a quotation.
type QuotationStatus string

// Quotation statuses. Accepted is reached only through order confirmation and is final.
const (
	QuotationDraft    QuotationStatus = "Draft"
	QuotationSent     QuotationStatus = "Sent"
	QuotationAccepted QuotationStatus = "Accepted"
)

// Valid reports whether s belongs to the enumeration.
func (s QuotationStatus) Valid() bool {
	return s == QuotationDraft || s == QuotationSent || s == QuotationAccepted
}

// Quotation is a GST price quotation issued to a customer.
type Quotation struct {
	ID              string
	QuotationNumber string // advisory, not unique
	Date            time.Time
	LineItems       []QuotationLineItem
	NetAmount       decimal.Decimal
	Status          QuotationStatus
}

// QuotationLineItem is one priced line of a quotation. Amount is pre-tax.
type QuotationLineItem struct {
	ID          string
	Description string
	HSN         string
	Pcs         int
	Quantity    int
	Amount      decimal.Decimal
}

// Clone copies the quotation including its line items.
func (q Quotation) Clone() Quotation {
	q.LineItems = append([]QuotationLineItem(nil), q.LineItems...)
	return q
}
