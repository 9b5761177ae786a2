package lifecycle_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/ledger"
	"github.com/jhoicas/pipeline-crm/internal/domain/lifecycle"
)

var created = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

type fixture struct {
	now    time.Time
	engine *lifecycle.Engine
	seq    int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{now: created.Add(48 * time.Hour)}
	f.engine = lifecycle.NewEngine(
		domain.ClockFunc(func() time.Time { return f.now }),
		lifecycle.WithIDs(func() string { f.seq++; return fmt.Sprintf("id-%d", f.seq) }),
		lifecycle.WithNumbers(ledger.NewNumberGenerator("SLI-Q").WithSource(func(int) int { return 7 })),
	)
	return f
}

func newCustomer(t *testing.T, stage entity.Stage) *entity.Customer {
	t.Helper()
	c, err := entity.NewCustomer(entity.NewCustomerInput{
		CustomerDetails: entity.CustomerDetails{
			Name: "Ravi Kumar", Phone: "9876543210", Location: "Madurai",
			BusinessType: entity.BusinessMurukku, DailyProduction: 100,
		},
		Stage: stage,
	}, "CUST-1", created)
	require.NoError(t, err)
	return c
}

func quotationInput(amounts ...int64) lifecycle.QuotationInput {
	in := lifecycle.QuotationInput{Date: created}
	for _, a := range amounts {
		in.LineItems = append(in.LineItems, lifecycle.LineItemInput{
			Description: "Automatic murukku machine", HSN: "8438", Pcs: 1, Quantity: 1,
			Amount: decimal.NewFromInt(a),
		})
	}
	return in
}

func TestChangeStage_SameStageIsNoop(t *testing.T) {
	f := newFixture(t)
	c := newCustomer(t, entity.StageLead)

	out, err := f.engine.ChangeStage(c, entity.StageLead)
	require.NoError(t, err)
	assert.Len(t, out.StageHistory, 1)
	assert.Equal(t, c.StageChangedAt, out.StageChangedAt)
	assert.Equal(t, c.LastContacted, out.LastContacted)
}

func TestChangeStage_AppendsHistory(t *testing.T) {
	f := newFixture(t)
	c := newCustomer(t, entity.StageEnquiry)

	out, err := f.engine.ChangeStage(c, entity.StageRetail)
	require.NoError(t, err)

	require.Len(t, out.StageHistory, 2)
	last := out.StageHistory[1]
	require.NotNil(t, last.From)
	assert.Equal(t, entity.StageEnquiry, *last.From)
	assert.Equal(t, entity.StageRetail, last.To)
	assert.Equal(t, f.now, last.ChangedAt)
	assert.Equal(t, entity.StageRetail, out.Stage)
	assert.Equal(t, f.now, out.StageChangedAt)
	assert.Equal(t, f.now, out.LastContacted)

	// input untouched
	assert.Equal(t, entity.StageEnquiry, c.Stage)
	assert.Len(t, c.StageHistory, 1)
	assert.Nil(t, c.StageHistory[0].From)
}

func TestChangeStage_InvalidStage(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.ChangeStage(newCustomer(t, entity.StageLead), entity.Stage("Won"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAddNote(t *testing.T) {
	f := newFixture(t)
	c := newCustomer(t, entity.StageLead)
	backdated := created.Add(-24 * time.Hour)
	follow := f.now.Add(7 * 24 * time.Hour)

	out, err := f.engine.AddNote(c, "  Called, asked for price  ", backdated, &follow)
	require.NoError(t, err)
	require.Len(t, out.Notes, 1)
	assert.Equal(t, "Called, asked for price", out.Notes[0].Content)
	assert.Equal(t, backdated, out.Notes[0].CreatedAt)
	assert.Equal(t, f.now, out.LastContacted)
	require.NotNil(t, out.NextFollowUpDate)
	assert.Equal(t, follow, *out.NextFollowUpDate)

	out2, err := f.engine.AddNote(out, "Visited", time.Time{}, nil)
	require.NoError(t, err)
	require.Len(t, out2.Notes, 2)
	assert.Equal(t, "Visited", out2.Notes[0].Content, "newest first")
	assert.Equal(t, f.now, out2.Notes[0].CreatedAt)
	assert.Nil(t, out2.NextFollowUpDate)
}

func TestAddNote_WhitespaceRejected(t *testing.T) {
	f := newFixture(t)
	c := newCustomer(t, entity.StageLead)

	out, err := f.engine.AddNote(c, " \t\n ", time.Time{}, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Nil(t, out)
	assert.Empty(t, c.Notes)
}

func TestUpdateDetails(t *testing.T) {
	f := newFixture(t)
	c := newCustomer(t, entity.StageLead)

	out, err := f.engine.UpdateDetails(c, entity.CustomerDetails{
		Name: " Anand ", Phone: "1", Location: "Salem", BusinessType: entity.BusinessSnacks, DailyProduction: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, "Anand", out.Name)
	assert.Equal(t, entity.BusinessSnacks, out.BusinessType)
	assert.Equal(t, c.ID, out.ID)
	assert.Equal(t, c.CreatedAt, out.CreatedAt)
	assert.Equal(t, c.Stage, out.Stage)

	_, err = f.engine.UpdateDetails(c, entity.CustomerDetails{Name: "x", Phone: "1", Location: "y", BusinessType: entity.BusinessSnacks})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSaveQuotation_New(t *testing.T) {
	f := newFixture(t)
	c := newCustomer(t, entity.StageLead)

	out, q, err := f.engine.SaveQuotation(c, quotationInput(1000, 2000), "")
	require.NoError(t, err)
	require.Len(t, out.Quotations, 1)
	assert.Equal(t, entity.QuotationDraft, q.Status)
	assert.Equal(t, "SLI-Q-2025-7", q.QuotationNumber)
	assert.True(t, q.NetAmount.Equal(decimal.NewFromInt(3540)))
	assert.NotEmpty(t, q.LineItems[0].ID)
	assert.Empty(t, c.Quotations)
}

func TestSaveQuotation_UpdateKeepsIDAndStatus(t *testing.T) {
	f := newFixture(t)
	sent := entity.QuotationSent
	in := quotationInput(1000)
	in.Status = &sent
	in.Number = "SLI-Q-2025-100"

	c, q, err := f.engine.SaveQuotation(newCustomer(t, entity.StageLead), in, "")
	require.NoError(t, err)

	edit := quotationInput(500, 500)
	edit.Number = "SLI-Q-2025-100"
	out, q2, err := f.engine.SaveQuotation(c, edit, q.ID)
	require.NoError(t, err)
	require.Len(t, out.Quotations, 1)
	assert.Equal(t, q.ID, q2.ID)
	assert.Equal(t, entity.QuotationSent, q2.Status)
	assert.True(t, q2.NetAmount.Equal(decimal.NewFromInt(1180)))
}

func TestSaveQuotation_EditKeepsDateAndNumberWhenOmitted(t *testing.T) {
	f := newFixture(t)
	c, q, err := f.engine.SaveQuotation(newCustomer(t, entity.StageLead), quotationInput(1000), "")
	require.NoError(t, err)
	require.Equal(t, created, q.Date)

	f.now = f.now.Add(24 * time.Hour)
	edit := quotationInput(2000)
	edit.Date = time.Time{}
	_, q2, err := f.engine.SaveQuotation(c, edit, q.ID)
	require.NoError(t, err)
	assert.Equal(t, created, q2.Date)
	assert.Equal(t, q.QuotationNumber, q2.QuotationNumber)
	assert.True(t, q2.NetAmount.Equal(decimal.NewFromInt(2360)))
}

func TestSaveQuotation_NewDefaultsToNow(t *testing.T) {
	f := newFixture(t)
	in := quotationInput(100)
	in.Date = time.Time{}

	_, q, err := f.engine.SaveQuotation(newCustomer(t, entity.StageLead), in, "")
	require.NoError(t, err)
	assert.Equal(t, f.now, q.Date)
	assert.Equal(t, "SLI-Q-2025-7", q.QuotationNumber)
}

func TestSaveQuotation_UnknownIDCreates(t *testing.T) {
	f := newFixture(t)
	c, _, err := f.engine.SaveQuotation(newCustomer(t, entity.StageLead), quotationInput(10), "")
	require.NoError(t, err)

	out, q, err := f.engine.SaveQuotation(c, quotationInput(20), "missing")
	require.NoError(t, err)
	require.Len(t, out.Quotations, 2)
	assert.Equal(t, q.ID, out.Quotations[0].ID)
}

func TestSaveQuotation_Validation(t *testing.T) {
	f := newFixture(t)
	c := newCustomer(t, entity.StageLead)
	accepted := entity.QuotationAccepted

	cases := map[string]func(in *lifecycle.QuotationInput){
		"no items":        func(in *lifecycle.QuotationInput) { in.LineItems = nil },
		"no description":  func(in *lifecycle.QuotationInput) { in.LineItems[0].Description = " " },
		"zero pcs":        func(in *lifecycle.QuotationInput) { in.LineItems[0].Pcs = 0 },
		"zero quantity":   func(in *lifecycle.QuotationInput) { in.LineItems[0].Quantity = 0 },
		"negative amount": func(in *lifecycle.QuotationInput) { in.LineItems[0].Amount = decimal.NewFromInt(-1) },
		"accepted status": func(in *lifecycle.QuotationInput) { in.Status = &accepted },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := quotationInput(100)
			mutate(&in)
			_, _, err := f.engine.SaveQuotation(c, in, "")
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestConfirmOrder_Idempotent(t *testing.T) {
	f := newFixture(t)
	c, q, err := f.engine.SaveQuotation(newCustomer(t, entity.StageLead), quotationInput(1000), "")
	require.NoError(t, err)

	once, err := f.engine.ConfirmOrder(c, q.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StageBooking, once.Stage)
	assert.Equal(t, entity.QuotationAccepted, once.Quotations[0].Status)
	require.Len(t, once.StageHistory, 2)
	assert.Equal(t, entity.StageLead, *once.StageHistory[1].From)
	assert.Equal(t, entity.StageBooking, once.StageHistory[1].To)

	f.now = f.now.Add(time.Hour)
	twice, err := f.engine.ConfirmOrder(once, q.ID)
	require.NoError(t, err)
	assert.Len(t, twice.StageHistory, 2)
	assert.Equal(t, once.StageChangedAt, twice.StageChangedAt)
	assert.Equal(t, entity.QuotationAccepted, twice.Quotations[0].Status)
}

func TestConfirmOrder_AlreadyBooking(t *testing.T) {
	f := newFixture(t)
	c, q, err := f.engine.SaveQuotation(newCustomer(t, entity.StageBooking), quotationInput(1000), "")
	require.NoError(t, err)

	out, err := f.engine.ConfirmOrder(c, q.ID)
	require.NoError(t, err)
	assert.Len(t, out.StageHistory, 1)
}

func TestConfirmOrder_UnknownQuotation(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.ConfirmOrder(newCustomer(t, entity.StageLead), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaveQuotation_AcceptedIsSettled(t *testing.T) {
	f := newFixture(t)
	c, q, err := f.engine.SaveQuotation(newCustomer(t, entity.StageLead), quotationInput(1000), "")
	require.NoError(t, err)
	c, err = f.engine.ConfirmOrder(c, q.ID)
	require.NoError(t, err)

	_, _, err = f.engine.SaveQuotation(c, quotationInput(1), q.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
