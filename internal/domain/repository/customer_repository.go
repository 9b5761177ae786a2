package repository

import (
	"context"

	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
)

// CustomerRepository is the persistence port for the customer aggregate. A customer is
// always stored and loaded whole, including notes, quotations and stage history.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	// CreateMany stores every customer or none of them.
	CreateMany(ctx context.Context, customers []*entity.Customer) error
	// GetByID returns (nil, nil) when the customer does not exist.
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	// List returns every customer, newest first.
	List(ctx context.Context) ([]*entity.Customer, error)
	// Update replaces the stored record; domain.ErrNotFound when absent.
	Update(ctx context.Context, customer *entity.Customer) error
	// Delete removes the record; domain.ErrNotFound when absent.
	Delete(ctx context.Context, id string) error
}
