package crm

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/application/ports"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/ledger"
	"github.com/jhoicas/pipeline-crm/internal/domain/lifecycle"
)

// QuotationUseCase covers quotation editing, order confirmation and rendering.
type QuotationUseCase struct {
	w         *Writer
	numbers   *ledger.NumberGenerator
	generator ports.QuotationPDFGenerator
	company   ports.CompanyProfile
}

// NewQuotationUseCase builds the use case. generator may be nil when PDFs are not served.
func NewQuotationUseCase(w *Writer, numbers *ledger.NumberGenerator, generator ports.QuotationPDFGenerator, company ports.CompanyProfile) *QuotationUseCase {
	if numbers == nil {
		numbers = ledger.NewNumberGenerator("")
	}
	return &QuotationUseCase{w: w, numbers: numbers, generator: generator, company: company}
}

// NextNumber proposes a quotation number for today.
func (uc *QuotationUseCase) NextNumber() dto.NextNumberResponse {
	return dto.NextNumberResponse{QuotationNumber: uc.numbers.Next(uc.w.engine.Now())}
}

// List returns the customer's quotations, newest first.
func (uc *QuotationUseCase) List(ctx context.Context, customerID string) ([]dto.QuotationResponse, error) {
	c, err := uc.w.load(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.QuotationResponse, 0, len(c.Quotations))
	for i := range c.Quotations {
		out = append(out, ToQuotationResponse(&c.Quotations[i]))
	}
	return out, nil
}

// Save edits the quotation with quotationID, or creates one when the id is empty or unknown.
func (uc *QuotationUseCase) Save(ctx context.Context, customerID, quotationID string, in dto.SaveQuotationRequest) (*dto.QuotationResponse, error) {
	input := lifecycle.QuotationInput{
		Number:    in.QuotationNumber,
		LineItems: make([]lifecycle.LineItemInput, 0, len(in.LineItems)),
	}
	if in.Date != nil {
		input.Date = *in.Date
	}
	if s := strings.TrimSpace(in.Status); s != "" {
		status := entity.QuotationStatus(s)
		input.Status = &status
	}
	for _, it := range in.LineItems {
		input.LineItems = append(input.LineItems, lifecycle.LineItemInput{
			ID: it.ID, Description: it.Description, HSN: it.HSN,
			Pcs: it.Pcs, Quantity: it.Quantity, Amount: it.Amount,
		})
	}

	var saved *entity.Quotation
	_, err := uc.w.Mutate(ctx, customerID, EventQuotationSaved, func(c *entity.Customer) (*entity.Customer, error) {
		next, q, err := uc.w.engine.SaveQuotation(c, input, quotationID)
		saved = q
		return next, err
	})
	if err != nil {
		return nil, err
	}
	out := ToQuotationResponse(saved)
	return &out, nil
}

// Confirm accepts the quotation as an order and moves the customer to Booking.
func (uc *QuotationUseCase) Confirm(ctx context.Context, customerID, quotationID string) (*dto.CustomerResponse, error) {
	c, err := uc.w.Mutate(ctx, customerID, EventQuotationConfirmed, func(c *entity.Customer) (*entity.Customer, error) {
		return uc.w.engine.ConfirmOrder(c, quotationID)
	})
	if err != nil {
		return nil, err
	}
	out := ToCustomerResponse(c)
	return &out, nil
}

// RenderPDF returns the quotation document and a download file name.
func (uc *QuotationUseCase) RenderPDF(ctx context.Context, customerID, quotationID string) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("crm: quotation PDF generator not configured")
	}
	c, err := uc.w.load(ctx, customerID)
	if err != nil {
		return nil, "", err
	}
	idx := c.QuotationIndex(quotationID)
	if idx < 0 {
		return nil, "", fmt.Errorf("%w: quotation %s", domain.ErrNotFound, quotationID)
	}
	q := &c.Quotations[idx]
	doc, err := uc.generator.GenerateQuotationPDF(ctx, uc.company, c, q)
	if err != nil {
		return nil, "", fmt.Errorf("crm: render quotation: %w", err)
	}
	return doc, fmt.Sprintf("Quotation-%s-%s.pdf", q.QuotationNumber, c.Name), nil
}
