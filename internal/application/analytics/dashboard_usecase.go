// Package analytics holds the dashboard and daily report use cases. Both are read-only
// projections over the customer store.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/pipeline-crm/internal/application/crm"
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/projection"
	"github.com/jhoicas/pipeline-crm/internal/domain/repository"
)

// DashboardUseCase builds the headline pipeline figures and follow-up reminders.
type DashboardUseCase struct {
	repo         repository.CustomerRepository
	clock        domain.Clock
	followUpDays int
}

// NewDashboardUseCase builds the use case.
func NewDashboardUseCase(repo repository.CustomerRepository, clock domain.Clock, followUpDays int) *DashboardUseCase {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	if followUpDays <= 0 {
		followUpDays = projection.DefaultFollowUpDays
	}
	return &DashboardUseCase{repo: repo, clock: clock, followUpDays: followUpDays}
}

// GetSummary returns totals, conversion, pending follow-ups, stage counts and the
// reminders due today and tomorrow.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.clock.Now()
	customers, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: list customers: %w", err)
	}

	s := projection.Summarize(customers, uc.followUpDays, now)
	out := &dto.DashboardSummaryDTO{
		TotalCustomers:    s.Total,
		Bookings:          s.Bookings,
		ConversionRate:    s.ConversionRate,
		PendingFollowUps:  s.PendingFollowUps,
		StageCounts:       make([]dto.StageCountDTO, 0, len(s.ByStage)),
		TodayFollowUps:    crm.ToCustomerSummaries(projection.FollowUpsOn(customers, now)),
		TomorrowFollowUps: crm.ToCustomerSummaries(projection.FollowUpsOn(customers, now.AddDate(0, 0, 1))),
		GeneratedAt:       now,
	}
	for _, sc := range s.ByStage {
		out.StageCounts = append(out.StageCounts, dto.StageCountDTO{
			Stage: string(sc.Stage), Label: sc.Stage.Label(), Count: sc.Count,
		})
	}
	return out, nil
}
