package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pipeline-crm/internal/domain"
	"github.com/jhoicas/pipeline-crm/internal/domain/entity"
	"github.com/jhoicas/pipeline-crm/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo stores customers with their notes, stage history and quotations in child
// tables. Writes that touch more than one table run in a transaction.
type CustomerRepo struct {
	db DB
	tx *TxRunner
}

// NewCustomerRepository builds the adapter over a pool or a transaction.
func NewCustomerRepository(db DB) *CustomerRepo {
	return &CustomerRepo{db: db, tx: NewTxRunner(db)}
}

const customerColumns = `id, name, phone, location, business_type, daily_production, stage,
	last_contacted, created_at, stage_changed_at, next_follow_up_date`

// Create persists a new customer.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	return r.CreateMany(ctx, []*entity.Customer{c})
}

// CreateMany persists every customer or none.
func (r *CustomerRepo) CreateMany(ctx context.Context, customers []*entity.Customer) error {
	return r.tx.Run(ctx, func(q Querier) error {
		for _, c := range customers {
			_, err := q.Exec(ctx, `
				INSERT INTO customers (`+customerColumns+`)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
				c.ID, c.Name, c.Phone, c.Location, string(c.BusinessType), c.DailyProduction, string(c.Stage),
				c.LastContacted, c.CreatedAt, c.StageChangedAt, c.NextFollowUpDate,
			)
			if err != nil {
				if isUniqueViolation(err) {
					return fmt.Errorf("%w: customer %s already exists", domain.ErrConflict, c.ID)
				}
				return fmt.Errorf("insert customer: %w", err)
			}
			if err := insertChildren(ctx, q, c); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID returns the customer or nil when absent.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	list, err := load(ctx, r.db, `WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// List returns every customer, newest first.
func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	return load(ctx, r.db, "")
}

// Update replaces the customer row and rewrites its owned collections.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	return r.tx.Run(ctx, func(q Querier) error {
		tag, err := q.Exec(ctx, `
			UPDATE customers
			SET name = $2, phone = $3, location = $4, business_type = $5, daily_production = $6,
			    stage = $7, last_contacted = $8, stage_changed_at = $9, next_follow_up_date = $10
			WHERE id = $1`,
			c.ID, c.Name, c.Phone, c.Location, string(c.BusinessType), c.DailyProduction,
			string(c.Stage), c.LastContacted, c.StageChangedAt, c.NextFollowUpDate,
		)
		if err != nil {
			return fmt.Errorf("update customer: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: customer %s", domain.ErrNotFound, c.ID)
		}
		for _, table := range []string{"customer_notes", "customer_stage_history", "quotations"} {
			if _, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE customer_id = $1`, c.ID); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return insertChildren(ctx, q, c)
	})
}

// Delete removes the customer; child rows cascade.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: customer %s", domain.ErrNotFound, id)
	}
	return nil
}

// ── Children ─────────────────────────────────────────────────────────────────

func insertChildren(ctx context.Context, q Querier, c *entity.Customer) error {
	for i, n := range c.Notes {
		if _, err := q.Exec(ctx, `
			INSERT INTO customer_notes (customer_id, id, position, content, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			c.ID, n.ID, i, n.Content, n.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert note: %w", err)
		}
	}
	for i, h := range c.StageHistory {
		var from string
		if h.From != nil {
			from = string(*h.From)
		}
		if _, err := q.Exec(ctx, `
			INSERT INTO customer_stage_history (customer_id, seq, from_stage, to_stage, changed_at)
			VALUES ($1, $2, $3, $4, $5)`,
			c.ID, i, nullIfEmpty(from), string(h.To), h.ChangedAt,
		); err != nil {
			return fmt.Errorf("insert stage history: %w", err)
		}
	}
	for i, qt := range c.Quotations {
		if _, err := q.Exec(ctx, `
			INSERT INTO quotations (customer_id, id, position, quotation_number, date, status, net_amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			c.ID, qt.ID, i, qt.QuotationNumber, qt.Date, string(qt.Status), qt.NetAmount,
		); err != nil {
			return fmt.Errorf("insert quotation: %w", err)
		}
		for j, it := range qt.LineItems {
			if _, err := q.Exec(ctx, `
				INSERT INTO quotation_items (customer_id, quotation_id, id, position, description, hsn, pcs, quantity, amount)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				c.ID, qt.ID, it.ID, j, it.Description, it.HSN, it.Pcs, it.Quantity, it.Amount,
			); err != nil {
				return fmt.Errorf("insert quotation item: %w", err)
			}
		}
	}
	return nil
}

// load reads customers matching where (may be empty) plus their children.
func load(ctx context.Context, q Querier, where string, args ...any) ([]*entity.Customer, error) {
	rows, err := q.Query(ctx, `SELECT `+customerColumns+` FROM customers `+where+` ORDER BY seq DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Customer, 0)
	byID := make(map[string]*entity.Customer)
	for rows.Next() {
		var (
			c                   entity.Customer
			businessType, stage string
		)
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Phone, &c.Location, &businessType, &c.DailyProduction, &stage,
			&c.LastContacted, &c.CreatedAt, &c.StageChangedAt, &c.NextFollowUpDate,
		); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		c.BusinessType = entity.BusinessType(businessType)
		c.Stage = entity.Stage(stage)
		c.Notes = []entity.Note{}
		c.Quotations = []entity.Quotation{}
		c.StageHistory = []entity.StageHistoryEntry{}
		list = append(list, &c)
		byID[c.ID] = &c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	if len(list) == 0 {
		return list, nil
	}

	ids := make([]string, 0, len(list))
	for _, c := range list {
		ids = append(ids, c.ID)
	}
	if err := loadNotes(ctx, q, ids, byID); err != nil {
		return nil, err
	}
	if err := loadHistory(ctx, q, ids, byID); err != nil {
		return nil, err
	}
	if err := loadQuotations(ctx, q, ids, byID); err != nil {
		return nil, err
	}
	return list, nil
}

func loadNotes(ctx context.Context, q Querier, ids []string, byID map[string]*entity.Customer) error {
	rows, err := q.Query(ctx, `
		SELECT customer_id, id, content, created_at FROM customer_notes
		WHERE customer_id = ANY($1) ORDER BY customer_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			customerID string
			n          entity.Note
		)
		if err := rows.Scan(&customerID, &n.ID, &n.Content, &n.CreatedAt); err != nil {
			return fmt.Errorf("scan note: %w", err)
		}
		if c := byID[customerID]; c != nil {
			c.Notes = append(c.Notes, n)
		}
	}
	return rows.Err()
}

func loadHistory(ctx context.Context, q Querier, ids []string, byID map[string]*entity.Customer) error {
	rows, err := q.Query(ctx, `
		SELECT customer_id, from_stage, to_stage, changed_at FROM customer_stage_history
		WHERE customer_id = ANY($1) ORDER BY customer_id, seq`, ids)
	if err != nil {
		return fmt.Errorf("list stage history: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			customerID, to string
			from           *string
			h              entity.StageHistoryEntry
		)
		if err := rows.Scan(&customerID, &from, &to, &h.ChangedAt); err != nil {
			return fmt.Errorf("scan stage history: %w", err)
		}
		if from != nil {
			s := entity.Stage(*from)
			h.From = &s
		}
		h.To = entity.Stage(to)
		if c := byID[customerID]; c != nil {
			c.StageHistory = append(c.StageHistory, h)
		}
	}
	return rows.Err()
}

func loadQuotations(ctx context.Context, q Querier, ids []string, byID map[string]*entity.Customer) error {
	rows, err := q.Query(ctx, `
		SELECT customer_id, id, quotation_number, date, status, net_amount FROM quotations
		WHERE customer_id = ANY($1) ORDER BY customer_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list quotations: %w", err)
	}
	type key struct{ customer, quotation string }
	index := make(map[key]int)
	for rows.Next() {
		var (
			customerID, status string
			qt                 entity.Quotation
		)
		if err := rows.Scan(&customerID, &qt.ID, &qt.QuotationNumber, &qt.Date, &status, &qt.NetAmount); err != nil {
			rows.Close()
			return fmt.Errorf("scan quotation: %w", err)
		}
		qt.Status = entity.QuotationStatus(status)
		qt.LineItems = []entity.QuotationLineItem{}
		if c := byID[customerID]; c != nil {
			index[key{customerID, qt.ID}] = len(c.Quotations)
			c.Quotations = append(c.Quotations, qt)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate quotations: %w", err)
	}

	items, err := q.Query(ctx, `
		SELECT customer_id, quotation_id, id, description, hsn, pcs, quantity, amount FROM quotation_items
		WHERE customer_id = ANY($1) ORDER BY customer_id, quotation_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list quotation items: %w", err)
	}
	defer items.Close()
	for items.Next() {
		var (
			customerID, quotationID string
			it                      entity.QuotationLineItem
		)
		if err := items.Scan(&customerID, &quotationID, &it.ID, &it.Description, &it.HSN, &it.Pcs, &it.Quantity, &it.Amount); err != nil {
			return fmt.Errorf("scan quotation item: %w", err)
		}
		c := byID[customerID]
		i, ok := index[key{customerID, quotationID}]
		if c == nil || !ok {
			continue
		}
		c.Quotations[i].LineItems = append(c.Quotations[i].LineItems, it)
	}
	return items.Err()
}
