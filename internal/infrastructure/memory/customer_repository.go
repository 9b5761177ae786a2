// Package memory is the process-local customer store used by default and in tests.
// Nothing is persisted across restarts.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/repository"
)

// CustomerRepo keeps customers in insertion order. Records are copied on the way in and on
// the way out so callers can never alias stored state.
type CustomerRepo struct {
	mu    sync.RWMutex
	byID  map[string]*entity.Customer
	order []string // insertion order, oldest first
}

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// NewCustomerRepo creates a store holding the given customers (oldest first).
func NewCustomerRepo(seed ...*entity.Customer) *CustomerRepo {
	r := &CustomerRepo{byID: make(map[string]*entity.Customer, len(seed))}
	for _, c := range seed {
		r.put(c)
	}
	return r
}

func (r *CustomerRepo) put(c *entity.Customer) {
	if _, exists := r.byID[c.ID]; !exists {
		r.order = append(r.order, c.ID)
	}
	r.byID[c.ID] = c.Clone()
}

// Create stores a new customer.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	return r.CreateMany(ctx, []*entity.Customer{c})
}

// CreateMany stores all customers or, when any id is already taken, none.
func (r *CustomerRepo) CreateMany(_ context.Context, customers []*entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]struct{}, len(customers))
	for _, c := range customers {
		if c == nil || c.ID == "" {
			return domain.Validationf("customer id is required")
		}
		if _, ok := r.byID[c.ID]; ok {
			return fmt.Errorf("%w: customer %s already exists", domain.ErrConflict, c.ID)
		}
		if _, ok := seen[c.ID]; ok {
			return fmt.Errorf("%w: duplicate customer id %s", domain.ErrConflict, c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	for _, c := range customers {
		r.put(c)
	}
	return nil
}

// GetByID returns a copy of the customer, or nil when absent.
func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return c.Clone(), nil
}

// List returns copies of every customer, newest first.
func (r *CustomerRepo) List(_ context.Context) ([]*entity.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Customer, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		out = append(out, r.byID[r.order[i]].Clone())
	}
	return out, nil
}

// Update replaces the stored customer.
func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[c.ID]; !ok {
		return fmt.Errorf("%w: customer %s", domain.ErrNotFound, c.ID)
	}
	r.byID[c.ID] = c.Clone()
	return nil
}

// Delete removes the customer.
func (r *CustomerRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return fmt.Errorf("%w: customer %s", domain.ErrNotFound, id)
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
