package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
)

func validInput() entity.NewCustomerInput {
	return entity.NewCustomerInput{
		CustomerDetails: entity.CustomerDetails{
			Name: "  Lakshmi Snacks ", Phone: "9000000001", Location: "Dindigul",
			BusinessType: entity.BusinessSnacks, DailyProduction: 250,
		},
		Stage: entity.StageEnquiry,
	}
}

func TestNewCustomer(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	c, err := entity.NewCustomer(validInput(), "CUST-1", now)
	require.NoError(t, err)

	assert.Equal(t, "Lakshmi Snacks", c.Name)
	assert.Equal(t, now, c.CreatedAt)
	assert.Equal(t, now, c.StageChangedAt)
	assert.Equal(t, now, c.LastContacted)
	assert.Nil(t, c.NextFollowUpDate)
	assert.Empty(t, c.Notes)
	assert.Empty(t, c.Quotations)
	require.Len(t, c.StageHistory, 1)
	assert.Nil(t, c.StageHistory[0].From)
	assert.Equal(t, entity.StageEnquiry, c.StageHistory[0].To)
}

func TestNewCustomer_Validation(t *testing.T) {
	cases := map[string]func(in *entity.NewCustomerInput){
		"blank name":     func(in *entity.NewCustomerInput) { in.Name = "  " },
		"blank phone":    func(in *entity.NewCustomerInput) { in.Phone = "" },
		"blank location": func(in *entity.NewCustomerInput) { in.Location = "" },
		"zero output":    func(in *entity.NewCustomerInput) { in.DailyProduction = 0 },
		"bad business":   func(in *entity.NewCustomerInput) { in.BusinessType = "Sweets" },
		"bad stage":      func(in *entity.NewCustomerInput) { in.Stage = "Won" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			_, err := entity.NewCustomer(in, "CUST-1", time.Now())
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestParseStage(t *testing.T) {
	s, err := entity.ParseStage("Retail / Order Complete")
	require.NoError(t, err)
	assert.Equal(t, entity.StageRetail, s)

	s, err = entity.ParseStage(" Lead ")
	require.NoError(t, err)
	assert.Equal(t, entity.StageLead, s)

	_, err = entity.ParseStage("lead")
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Equal(t, "Retail / Order Complete", entity.StageRetail.Label())
	assert.Equal(t, 2, entity.StageBooking.Order())
}

func TestClone_IsDeep(t *testing.T) {
	c, err := entity.NewCustomer(validInput(), "CUST-1", time.Now())
	require.NoError(t, err)
	follow := time.Now()
	c.NextFollowUpDate = &follow
	c.Notes = append(c.Notes, entity.Note{ID: "n1", Content: "hi"})
	c.Quotations = append(c.Quotations, entity.Quotation{
		ID:        "q1",
		LineItems: []entity.QuotationLineItem{{ID: "l1", Amount: decimal.NewFromInt(10)}},
	})

	cp := c.Clone()
	cp.Notes[0].Content = "changed"
	cp.Quotations[0].LineItems[0].Description = "changed"
	*cp.NextFollowUpDate = follow.Add(time.Hour)
	cp.StageHistory[0].To = entity.StageLead

	assert.Equal(t, "hi", c.Notes[0].Content)
	assert.Empty(t, c.Quotations[0].LineItems[0].Description)
	assert.Equal(t, follow, *c.NextFollowUpDate)
	assert.Equal(t, entity.StageEnquiry, c.StageHistory[0].To)
}
