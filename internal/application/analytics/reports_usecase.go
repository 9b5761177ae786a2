package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pipeline-crm/internal/application/crm"
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/projection"
	"github.com/jhoicas/pipeline-crm/internal/domain/repository"
)

// ReportsUseCase builds the daily activity report.
type ReportsUseCase struct {
	repo  repository.CustomerRepository
	clock domain.Clock
}

// NewReportsUseCase builds the use case.
func NewReportsUseCase(repo repository.CustomerRepository, clock domain.Clock) *ReportsUseCase {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &ReportsUseCase{repo: repo, clock: clock}
}

// ParseDay reads a YYYY-MM-DD date in the clock's location. Empty means today.
func (uc *ReportsUseCase) ParseDay(raw string) (time.Time, error) {
	now := uc.clock.Now()
	if raw == "" {
		return now, nil
	}
	day, err := time.ParseInLocation(time.DateOnly, raw, now.Location())
	if err != nil {
		return time.Time{}, domain.Validationf("date must be YYYY-MM-DD")
	}
	return day, nil
}

// Daily lists customers contacted and customers whose stage changed on day. A zero day
// means today in the clock's location.
func (uc *ReportsUseCase) Daily(ctx context.Context, day time.Time) (*dto.DailyReportDTO, error) {
	if day.IsZero() {
		day = uc.clock.Now()
	}
	customers, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("reports: list customers: %w", err)
	}

	out := &dto.DailyReportDTO{
		Date:         day.Format(time.DateOnly),
		Contacted:    crm.ToCustomerSummaries(projection.ContactedOn(customers, day)),
		StageChanges: []dto.StageChangeDTO{},
	}
	for _, c := range projection.StageChangedOn(customers, day) {
		last := c.StageHistory[len(c.StageHistory)-1]
		change := dto.StageChangeDTO{
			Customer: crm.ToCustomerSummary(c),
			To:       string(last.To),
			At:       last.ChangedAt,
		}
		if last.From != nil {
			from := string(*last.From)
			change.From = &from
		}
		out.StageChanges = append(out.StageChanges, change)
	}
	return out, nil
}
