package crm

import (
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/ledger"
)

// ToCustomerResponse maps the aggregate to its full API shape.
func ToCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	out := dto.CustomerResponse{
		ID:               c.ID,
		Name:             c.Name,
		Phone:            c.Phone,
		Location:         c.Location,
		BusinessType:     string(c.BusinessType),
		DailyProduction:  c.DailyProduction,
		Stage:            string(c.Stage),
		StageLabel:       c.Stage.Label(),
		LastContacted:    c.LastContacted,
		CreatedAt:        c.CreatedAt,
		StageChangedAt:   c.StageChangedAt,
		NextFollowUpDate: c.NextFollowUpDate,
		Notes:            make([]dto.NoteResponse, 0, len(c.Notes)),
		Quotations:       make([]dto.QuotationResponse, 0, len(c.Quotations)),
		StageHistory:     make([]dto.StageHistoryResponse, 0, len(c.StageHistory)),
	}
	for _, n := range c.Notes {
		out.Notes = append(out.Notes, dto.NoteResponse{ID: n.ID, Content: n.Content, CreatedAt: n.CreatedAt})
	}
	for i := range c.Quotations {
		out.Quotations = append(out.Quotations, ToQuotationResponse(&c.Quotations[i]))
	}
	for _, h := range c.StageHistory {
		out.StageHistory = append(out.StageHistory, toHistoryResponse(h))
	}
	return out
}

func toHistoryResponse(h entity.StageHistoryEntry) dto.StageHistoryResponse {
	r := dto.StageHistoryResponse{To: string(h.To), ChangedAt: h.ChangedAt}
	if h.From != nil {
		from := string(*h.From)
		r.From = &from
	}
	return r
}

// ToCustomerResponses maps a list.
func ToCustomerResponses(cs []*entity.Customer) []dto.CustomerResponse {
	out := make([]dto.CustomerResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, ToCustomerResponse(c))
	}
	return out
}

// ToCustomerSummary maps the compact shape used by dashboards and reports.
func ToCustomerSummary(c *entity.Customer) dto.CustomerSummaryDTO {
	return dto.CustomerSummaryDTO{
		ID:               c.ID,
		Name:             c.Name,
		Phone:            c.Phone,
		Location:         c.Location,
		Stage:            string(c.Stage),
		LastContacted:    c.LastContacted,
		StageChangedAt:   c.StageChangedAt,
		NextFollowUpDate: c.NextFollowUpDate,
	}
}

// ToCustomerSummaries maps a list.
func ToCustomerSummaries(cs []*entity.Customer) []dto.CustomerSummaryDTO {
	out := make([]dto.CustomerSummaryDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, ToCustomerSummary(c))
	}
	return out
}

// ToQuotationResponse maps a quotation and its tax breakdown. The stored net amount is
// reported as is, since accepted quotations are settled.
func ToQuotationResponse(q *entity.Quotation) dto.QuotationResponse {
	totals := ledger.ComputeTotals(q.LineItems)
	out := dto.QuotationResponse{
		ID:              q.ID,
		QuotationNumber: q.QuotationNumber,
		Date:            q.Date,
		Status:          string(q.Status),
		LineItems:       make([]dto.LineItemResponse, 0, len(q.LineItems)),
		SubTotal:        totals.SubTotal,
		CGST:            totals.CGST,
		SGST:            totals.SGST,
		NetAmount:       q.NetAmount,
	}
	for _, it := range q.LineItems {
		out.LineItems = append(out.LineItems, dto.LineItemResponse{
			ID: it.ID, Description: it.Description, HSN: it.HSN,
			Pcs: it.Pcs, Quantity: it.Quantity, Amount: it.Amount,
		})
	}
	return out
}
