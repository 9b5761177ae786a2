// Package crm holds the customer and quotation use cases. All writes go through Writer,
// which serializes them (single writer, last write wins) and publishes change events.
package crm

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/lifecycle"
	"github.com/jhoicas/pipeline-crm/internal/domain/repository"
	"github.com/jhoicas/pipeline-crm/pkg/logger"
)

// Writer applies load → engine → replace → publish under one lock.
type Writer struct {
	mu     sync.Mutex
	repo   repository.CustomerRepository
	engine *lifecycle.Engine
	bus    *EventBus
	log    *logger.Logger
}

// NewWriter builds the shared writer. bus may be nil.
func NewWriter(repo repository.CustomerRepository, engine *lifecycle.Engine, bus *EventBus, log *logger.Logger) *Writer {
	return &Writer{repo: repo, engine: engine, bus: bus, log: log}
}

// Engine exposes the lifecycle engine (and through it the clock).
func (w *Writer) Engine() *lifecycle.Engine { return w.engine }

// Repo exposes the repository for reads.
func (w *Writer) Repo() repository.CustomerRepository { return w.repo }

// NewCustomerID returns a fresh opaque customer id.
func (w *Writer) NewCustomerID() string { return "CUST-" + uuid.NewString() }

func (w *Writer) publish(t EventType, customerID string) {
	if w.bus == nil {
		return
	}
	w.bus.Publish(Event{Type: t, CustomerID: customerID, At: w.engine.Now()})
}

// load returns the customer or domain.ErrNotFound.
func (w *Writer) load(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := w.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("crm: load customer: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: customer %s", domain.ErrNotFound, id)
	}
	return c, nil
}

// Mutate loads the customer, applies fn and stores the result. Nothing is written when fn
// fails.
func (w *Writer) Mutate(ctx context.Context, id string, event EventType, fn func(*entity.Customer) (*entity.Customer, error)) (*entity.Customer, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	current, err := w.load(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	if err := w.repo.Update(ctx, next); err != nil {
		return nil, fmt.Errorf("crm: update customer: %w", err)
	}
	w.log.Info().Str("customer_id", id).Str("event", string(event)).Msg("customer changed")
	w.publish(event, id)
	return next, nil
}

// Insert stores new customers atomically.
func (w *Writer) Insert(ctx context.Context, event EventType, customers ...*entity.Customer) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.repo.CreateMany(ctx, customers); err != nil {
		return fmt.Errorf("crm: create customers: %w", err)
	}
	w.log.Info().Int("count", len(customers)).Str("event", string(event)).Msg("customers created")
	for _, c := range customers {
		w.publish(event, c.ID)
	}
	return nil
}

// Remove deletes a customer.
func (w *Writer) Remove(ctx context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("crm: delete customer: %w", err)
	}
	w.log.Info().Str("customer_id", id).Msg("customer deleted")
	w.publish(EventCustomerDeleted, id)
	return nil
}
