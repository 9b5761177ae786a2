package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pipeline-crm/internal/application/analytics"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/infrastructure/memory"
)

var now = time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)

func demoRepo() *memory.CustomerRepo {
	return memory.NewCustomerRepo(memory.DemoCustomers(now)...)
}

func TestDashboardSummary(t *testing.T) {
	uc := analytics.NewDashboardUseCase(demoRepo(), domain.ClockFunc(func() time.Time { return now }), 7)

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, out.TotalCustomers)
	assert.Equal(t, 2, out.Bookings)
	assert.Equal(t, 33.3, out.ConversionRate)
	// CUST-004 (32 days) and CUST-006 (8 days)
	assert.Equal(t, 2, out.PendingFollowUps)
	require.Len(t, out.StageCounts, 4)
	assert.Equal(t, "Retail / Order Complete", out.StageCounts[3].Label)

	today := make([]string, 0)
	for _, c := range out.TodayFollowUps {
		today = append(today, c.ID)
	}
	assert.ElementsMatch(t, []string{"CUST-002", "CUST-005"}, today)
	require.Len(t, out.TomorrowFollowUps, 1)
	assert.Equal(t, "CUST-001", out.TomorrowFollowUps[0].ID)
}

func TestDailyReport(t *testing.T) {
	uc := analytics.NewReportsUseCase(demoRepo(), domain.ClockFunc(func() time.Time { return now }))

	out, err := uc.Daily(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-11", out.Date)
	require.Len(t, out.Contacted, 1)
	assert.Equal(t, "CUST-001", out.Contacted[0].ID)
	require.Len(t, out.StageChanges, 1)
	assert.Nil(t, out.StageChanges[0].From)
	assert.Equal(t, "Enquiry", out.StageChanges[0].To)

	yesterday, err := uc.Daily(context.Background(), now.AddDate(0, 0, -1))
	require.NoError(t, err)
	require.Len(t, yesterday.StageChanges, 1)
	assert.Equal(t, "CUST-002", yesterday.StageChanges[0].Customer.ID)
	require.NotNil(t, yesterday.StageChanges[0].From)
	assert.Equal(t, "Enquiry", *yesterday.StageChanges[0].From)
}

func TestParseDay(t *testing.T) {
	uc := analytics.NewReportsUseCase(demoRepo(), domain.ClockFunc(func() time.Time { return now }))

	day, err := uc.ParseDay("2025-06-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), day)

	today, err := uc.ParseDay("")
	require.NoError(t, err)
	assert.Equal(t, now, today)

	_, err = uc.ParseDay("10/06/2025")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
