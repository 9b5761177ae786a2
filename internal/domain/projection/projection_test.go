package projection_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/projection"
)

// Wednesday.
var now = time.Date(2025, 6, 11, 15, 30, 0, 0, time.UTC)

func customer(id, name string, stage entity.Stage, created time.Time) *entity.Customer {
	return &entity.Customer{
		ID: id, Name: name, Stage: stage,
		CreatedAt: created, LastContacted: created, StageChangedAt: created,
		StageHistory: []entity.StageHistoryEntry{{To: stage, ChangedAt: created}},
	}
}

func ids(cs []*entity.Customer) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func TestFilterByStages(t *testing.T) {
	in := []*entity.Customer{
		customer("1", "a", entity.StageLead, now),
		customer("2", "b", entity.StageBooking, now),
		customer("3", "c", entity.StageRetail, now),
	}
	assert.Equal(t, []string{"2", "3"}, ids(projection.FilterByStages(in, entity.StageBooking, entity.StageRetail)))
	assert.Len(t, projection.FilterByStages(in), 3)
}

func TestFilterPendingFollowUp_Boundary(t *testing.T) {
	exact := customer("exact", "a", entity.StageLead, now)
	exact.LastContacted = now.Add(-7 * 24 * time.Hour)
	over := customer("over", "b", entity.StageLead, now)
	over.LastContacted = now.Add(-7*24*time.Hour - time.Second)
	eight := customer("eight", "c", entity.StageLead, now)
	eight.LastContacted = now.Add(-8 * 24 * time.Hour)
	fresh := customer("fresh", "d", entity.StageLead, now)

	got := projection.FilterPendingFollowUp([]*entity.Customer{exact, over, eight, fresh}, projection.DefaultFollowUpDays, now)
	assert.Equal(t, []string{"over", "eight"}, ids(got))
}

func TestFilterByCreatedBucket(t *testing.T) {
	today := customer("today", "a", entity.StageLead, time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC))
	yesterday := customer("yesterday", "b", entity.StageLead, time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC))
	sunday := customer("sunday", "c", entity.StageLead, time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC))
	saturday := customer("saturday", "d", entity.StageLead, time.Date(2025, 6, 7, 23, 0, 0, 0, time.UTC))
	lastMonth := customer("may", "e", entity.StageLead, time.Date(2025, 5, 31, 12, 0, 0, 0, time.UTC))
	all := []*entity.Customer{today, yesterday, sunday, saturday, lastMonth}

	tests := []struct {
		bucket projection.Bucket
		want   []string
	}{
		{projection.BucketToday, []string{"today"}},
		{projection.BucketYesterday, []string{"yesterday"}},
		{projection.BucketWeek, []string{"today", "yesterday", "sunday"}},
		{projection.BucketMonth, []string{"today", "yesterday", "sunday", "saturday"}},
		{projection.BucketAll, []string{"today", "yesterday", "sunday", "saturday", "may"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.bucket), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(projection.FilterByCreatedBucket(all, tt.bucket, now)))
		})
	}
}

func TestFilterByCreatedBucket_UsesNowLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	localNow := time.Date(2025, 6, 11, 1, 0, 0, 0, ist)
	// 20:00 UTC on the 10th is 01:30 IST on the 11th.
	c := customer("late", "a", entity.StageLead, time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC))

	assert.Len(t, projection.FilterByCreatedBucket([]*entity.Customer{c}, projection.BucketToday, localNow), 0)
	assert.Len(t, projection.FilterByCreatedBucket([]*entity.Customer{c}, projection.BucketYesterday, localNow), 1)
}

func TestParseBucket(t *testing.T) {
	b, err := projection.ParseBucket("")
	require.NoError(t, err)
	assert.Equal(t, projection.BucketAll, b)

	_, err = projection.ParseBucket("decade")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSortBy_StableBothDirections(t *testing.T) {
	in := []*entity.Customer{
		customer("1", "Mani", entity.StageLead, now),
		customer("2", "Arun", entity.StageLead, now),
		customer("3", "Mani", entity.StageLead, now),
		customer("4", "Arun", entity.StageLead, now),
	}

	asc, err := projection.SortBy(in, projection.SortName, projection.Ascending)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids(asc))

	desc, err := projection.SortBy(asc, projection.SortName, projection.Descending)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3", "2", "4"}, ids(desc))

	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(in), "input untouched")
}

func TestSortBy_StageUsesPipelineOrder(t *testing.T) {
	in := []*entity.Customer{
		customer("r", "a", entity.StageRetail, now),
		customer("e", "b", entity.StageEnquiry, now),
		customer("b", "c", entity.StageBooking, now),
		customer("l", "d", entity.StageLead, now),
	}
	out, err := projection.SortBy(in, projection.SortStage, projection.Ascending)
	require.NoError(t, err)
	assert.Equal(t, []string{"e", "l", "b", "r"}, ids(out))
}

func TestSortBy_UnknownKey(t *testing.T) {
	_, err := projection.SortBy(nil, projection.SortKey("notes"), projection.Ascending)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSummarize(t *testing.T) {
	stale := customer("4", "d", entity.StageLead, now.Add(-10*24*time.Hour))
	in := []*entity.Customer{
		customer("1", "a", entity.StageBooking, now),
		customer("2", "b", entity.StageRetail, now),
		customer("3", "c", entity.StageEnquiry, now),
		stale,
		customer("5", "e", entity.StageLead, now),
		customer("6", "f", entity.StageLead, now),
	}

	s := projection.Summarize(in, projection.DefaultFollowUpDays, now)
	assert.Equal(t, 6, s.Total)
	assert.Equal(t, 2, s.Bookings)
	assert.Equal(t, 33.3, s.ConversionRate)
	assert.Equal(t, 1, s.PendingFollowUps)
	assert.Equal(t, []projection.StageCount{
		{Stage: entity.StageEnquiry, Count: 1},
		{Stage: entity.StageLead, Count: 3},
		{Stage: entity.StageBooking, Count: 1},
		{Stage: entity.StageRetail, Count: 1},
	}, s.ByStage)

	assert.Zero(t, projection.Summarize(nil, 7, now).ConversionRate)
}

func TestDailyViews(t *testing.T) {
	tomorrow := now.AddDate(0, 0, 1)
	a := customer("a", "a", entity.StageLead, now.AddDate(0, 0, -3))
	a.NextFollowUpDate = &tomorrow
	b := customer("b", "b", entity.StageLead, now.AddDate(0, 0, -3))
	b.LastContacted = now.Add(-time.Hour)
	c := customer("c", "c", entity.StageBooking, now.AddDate(0, 0, -3))
	c.StageChangedAt = startOfToday()
	in := []*entity.Customer{a, b, c}

	assert.Equal(t, []string{"a"}, ids(projection.FollowUpsOn(in, tomorrow)))
	assert.Empty(t, projection.FollowUpsOn(in, now))
	assert.Equal(t, []string{"b"}, ids(projection.ContactedOn(in, now)))
	assert.Equal(t, []string{"c"}, ids(projection.StageChangedOn(in, now)))
}

func startOfToday() time.Time { return projection.StartOfDay(now) }
