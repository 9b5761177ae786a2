package postgres

import (
	"context"
	"fmt"
)

// TxRunner runs callbacks inside a PostgreSQL transaction.
type TxRunner struct {
	db DB
}

// NewTxRunner builds the runner.
func NewTxRunner(db DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run begins a transaction, hands it to fn and commits, or rolls back when fn fails.
func (r *TxRunner) Run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
