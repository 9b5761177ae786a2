package crm

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/projection"
)

// CustomerUseCase covers customer registration, pipeline moves, notes and listings.
type CustomerUseCase struct {
	w            *Writer
	followUpDays int
}

// NewCustomerUseCase builds the use case. followUpDays <= 0 uses the default threshold.
func NewCustomerUseCase(w *Writer, followUpDays int) *CustomerUseCase {
	if followUpDays <= 0 {
		followUpDays = projection.DefaultFollowUpDays
	}
	return &CustomerUseCase{w: w, followUpDays: followUpDays}
}

// FollowUpDays is the idle threshold used by the pending filter.
func (uc *CustomerUseCase) FollowUpDays() int { return uc.followUpDays }

// Create registers a new customer. An empty stage means Enquiry.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	stage := entity.StageEnquiry
	if strings.TrimSpace(in.Stage) != "" {
		s, err := entity.ParseStage(in.Stage)
		if err != nil {
			return nil, err
		}
		stage = s
	}
	c, err := entity.NewCustomer(entity.NewCustomerInput{
		CustomerDetails: entity.CustomerDetails{
			Name:            in.Name,
			Phone:           in.Phone,
			Location:        in.Location,
			BusinessType:    entity.BusinessType(strings.TrimSpace(in.BusinessType)),
			DailyProduction: in.DailyProduction,
		},
		Stage: stage,
	}, uc.w.NewCustomerID(), uc.w.engine.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.w.Insert(ctx, EventCustomerCreated, c); err != nil {
		return nil, err
	}
	out := ToCustomerResponse(c)
	return &out, nil
}

// Get returns one customer.
func (uc *CustomerUseCase) Get(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.w.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := ToCustomerResponse(c)
	return &out, nil
}

// List returns customers matching q.
func (uc *CustomerUseCase) List(ctx context.Context, q dto.CustomerListQuery) ([]dto.CustomerResponse, error) {
	list, err := uc.Filter(ctx, q)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponses(list), nil
}

// Filter applies stage, pending, creation-date and sort criteria in that order.
func (uc *CustomerUseCase) Filter(ctx context.Context, q dto.CustomerListQuery) ([]*entity.Customer, error) {
	now := uc.w.engine.Now()

	var stages []entity.Stage
	for _, raw := range strings.Split(q.Stages, ",") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		s, err := entity.ParseStage(raw)
		if err != nil {
			return nil, err
		}
		stages = append(stages, s)
	}
	bucket, err := projection.ParseBucket(q.Created)
	if err != nil {
		return nil, err
	}
	dir, err := projection.ParseDirection(q.Dir)
	if err != nil {
		return nil, err
	}

	list, err := uc.w.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	list = projection.FilterByStages(list, stages...)
	if q.Pending {
		list = projection.FilterPendingFollowUp(list, uc.followUpDays, now)
	}
	list = projection.FilterByCreatedBucket(list, bucket, now)
	if q.Sort != "" {
		return projection.SortBy(list, projection.SortKey(q.Sort), dir)
	}
	return list, nil
}

// UpdateDetails edits the descriptive fields.
func (uc *CustomerUseCase) UpdateDetails(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	details := entity.CustomerDetails{
		Name:            in.Name,
		Phone:           in.Phone,
		Location:        in.Location,
		BusinessType:    entity.BusinessType(strings.TrimSpace(in.BusinessType)),
		DailyProduction: in.DailyProduction,
	}
	c, err := uc.w.Mutate(ctx, id, EventCustomerUpdated, func(c *entity.Customer) (*entity.Customer, error) {
		return uc.w.engine.UpdateDetails(c, details)
	})
	if err != nil {
		return nil, err
	}
	out := ToCustomerResponse(c)
	return &out, nil
}

// Delete removes the customer.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	return uc.w.Remove(ctx, id)
}

// ChangeStage moves the customer through the pipeline.
func (uc *CustomerUseCase) ChangeStage(ctx context.Context, id string, in dto.ChangeStageRequest) (*dto.CustomerResponse, error) {
	stage, err := entity.ParseStage(in.Stage)
	if err != nil {
		return nil, err
	}
	c, err := uc.w.Mutate(ctx, id, EventStageChanged, func(c *entity.Customer) (*entity.Customer, error) {
		return uc.w.engine.ChangeStage(c, stage)
	})
	if err != nil {
		return nil, err
	}
	out := ToCustomerResponse(c)
	return &out, nil
}

// AddNote records an interaction and reschedules the next follow-up.
func (uc *CustomerUseCase) AddNote(ctx context.Context, id string, in dto.AddNoteRequest) (*dto.CustomerResponse, error) {
	var date time.Time
	if in.Date != nil {
		date = *in.Date
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, domain.Validationf("note content is required")
	}
	c, err := uc.w.Mutate(ctx, id, EventNoteAdded, func(c *entity.Customer) (*entity.Customer, error) {
		return uc.w.engine.AddNote(c, in.Content, date, in.NextFollowUpDate)
	})
	if err != nil {
		return nil, err
	}
	out := ToCustomerResponse(c)
	return &out, nil
}
