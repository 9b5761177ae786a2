package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
)

func stagePtr(s entity.Stage) *entity.Stage { return &s }

func timePtr(t time.Time) *time.Time { return &t }

// DemoCustomers returns the demo data set with dates relative to now. The slice is ordered
// oldest insertion first so List shows CUST-001 at the top.
func DemoCustomers(now time.Time) []*entity.Customer {
	daysAgo := func(n int) time.Time { return now.AddDate(0, 0, -n) }
	today, tomorrow := now, now.AddDate(0, 0, 1)
	yesterday, twoDaysAgo, threeDaysAgo := daysAgo(1), daysAgo(2), daysAgo(3)
	weekAgo, twoWeeksAgo, lastMonth := daysAgo(8), daysAgo(14), daysAgo(32)

	item := func(id, desc, hsn string, pcs, qty int, amount int64) entity.QuotationLineItem {
		return entity.QuotationLineItem{ID: id, Description: desc, HSN: hsn, Pcs: pcs, Quantity: qty, Amount: decimal.NewFromInt(amount)}
	}

	customers := []*entity.Customer{
		{
			ID: "CUST-001", Name: "Anbu Cheliyan", Phone: "9876543210", Location: "Madurai",
			BusinessType: entity.BusinessMurukku, DailyProduction: 150, Stage: entity.StageEnquiry,
			Notes: []entity.Note{
				{ID: "N1", Content: "Called to ask about the new automatic murukku machine. Sent brochure.", CreatedAt: today},
			},
			LastContacted: today, CreatedAt: today, StageChangedAt: today,
			StageHistory:     []entity.StageHistoryEntry{{To: entity.StageEnquiry, ChangedAt: today}},
			NextFollowUpDate: timePtr(tomorrow),
		},
		{
			ID: "CUST-002", Name: "Bhavani Snacks", Phone: "9123456780", Location: "Coimbatore",
			BusinessType: entity.BusinessSnacks, DailyProduction: 300, Stage: entity.StageLead,
			Notes: []entity.Note{
				{ID: "N2-1", Content: "Interested in a full snacks production line. Needs a detailed quotation.", CreatedAt: yesterday},
			},
			LastContacted: yesterday, CreatedAt: twoDaysAgo, StageChangedAt: yesterday,
			StageHistory: []entity.StageHistoryEntry{
				{To: entity.StageEnquiry, ChangedAt: twoDaysAgo},
				{From: stagePtr(entity.StageEnquiry), To: entity.StageLead, ChangedAt: yesterday},
			},
			NextFollowUpDate: timePtr(today),
		},
		{
			ID: "CUST-003", Name: "Chennai Sweets", Phone: "9988776655", Location: "Chennai",
			BusinessType: entity.BusinessSnacks, DailyProduction: 500, Stage: entity.StageBooking,
			Notes: []entity.Note{
				{ID: "N3-1", Content: "Quotation accepted. Paid advance amount.", CreatedAt: threeDaysAgo},
			},
			Quotations: []entity.Quotation{{
				ID: "Q1", QuotationNumber: "SLI-Q-24-001", Date: threeDaysAgo, Status: entity.QuotationAccepted,
				LineItems: []entity.QuotationLineItem{
					item("LI-1", "Automatic Murukku Machine - Model X", "8438", 1, 1, 450000),
					item("LI-2", "Installation & Training Charges", "9987", 1, 1, 25000),
				},
				NetAmount: decimal.NewFromInt(560500),
			}},
			LastContacted: threeDaysAgo, CreatedAt: twoWeeksAgo, StageChangedAt: threeDaysAgo,
			StageHistory: []entity.StageHistoryEntry{
				{To: entity.StageEnquiry, ChangedAt: twoWeeksAgo},
				{From: stagePtr(entity.StageEnquiry), To: entity.StageLead, ChangedAt: weekAgo},
				{From: stagePtr(entity.StageLead), To: entity.StageBooking, ChangedAt: threeDaysAgo},
			},
		},
		{
			ID: "CUST-004", Name: "Salem Murukku Center", Phone: "9001122334", Location: "Salem",
			BusinessType: entity.BusinessMurukku, DailyProduction: 200, Stage: entity.StageRetail,
			Notes: []entity.Note{
				{ID: "N4-1", Content: "Order delivered and installed.", CreatedAt: lastMonth},
			},
			Quotations: []entity.Quotation{{
				ID: "Q2", QuotationNumber: "SLI-Q-24-002", Date: lastMonth, Status: entity.QuotationAccepted,
				LineItems: []entity.QuotationLineItem{
					item("LI-3", "Semi-automatic Murukku Machine", "8438", 2, 2, 150000),
				},
				NetAmount: decimal.NewFromInt(177000),
			}},
			LastContacted: lastMonth, CreatedAt: lastMonth, StageChangedAt: lastMonth,
			StageHistory: []entity.StageHistoryEntry{{To: entity.StageRetail, ChangedAt: lastMonth}},
		},
		{
			ID: "CUST-005", Name: "Tirunelveli Halwa King", Phone: "9556677889", Location: "Tirunelveli",
			BusinessType: entity.BusinessSnacks, DailyProduction: 400, Stage: entity.StageLead,
			Notes: []entity.Note{
				{ID: "N5-1", Content: "Follow-up call scheduled for next week to discuss pricing.", CreatedAt: threeDaysAgo},
			},
			LastContacted: threeDaysAgo, CreatedAt: weekAgo, StageChangedAt: threeDaysAgo,
			StageHistory: []entity.StageHistoryEntry{
				{To: entity.StageEnquiry, ChangedAt: weekAgo},
				{From: stagePtr(entity.StageEnquiry), To: entity.StageLead, ChangedAt: threeDaysAgo},
			},
			NextFollowUpDate: timePtr(today),
		},
		{
			ID: "CUST-006", Name: "Erode Crispies", Phone: "9112233445", Location: "Erode",
			BusinessType: entity.BusinessSnacks, DailyProduction: 180, Stage: entity.StageEnquiry,
			LastContacted: weekAgo, CreatedAt: weekAgo, StageChangedAt: weekAgo,
			StageHistory: []entity.StageHistoryEntry{{To: entity.StageEnquiry, ChangedAt: weekAgo}},
		},
	}

	out := make([]*entity.Customer, 0, len(customers))
	for i := len(customers) - 1; i >= 0; i-- {
		c := customers[i]
		if c.Notes == nil {
			c.Notes = []entity.Note{}
		}
		if c.Quotations == nil {
			c.Quotations = []entity.Quotation{}
		}
		out = append(out, c)
	}
	return out
}
