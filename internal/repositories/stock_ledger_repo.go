package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/models"
)

type StockLedgerRepository interface {
	WithTx(tx pgx.Tx) StockLedgerRepository
	// Append inserts an immutable ledger row. The ledger has no update or
	// delete operations by design.
	Append(ctx context.Context, entry *models.StockLedgerEntry) error
	List(ctx context.Context, productID *uuid.UUID, limit, offset int) ([]*models.StockLedgerEntry, error)
}

type stockLedgerRepo struct {
	db Querier
}

func NewStockLedgerRepo(db Querier) StockLedgerRepository {
	return &stockLedgerRepo{db: db}
}

func (r *stockLedgerRepo) WithTx(tx pgx.Tx) StockLedgerRepository {
	return &stockLedgerRepo{db: tx}
}

func (r *stockLedgerRepo) Append(ctx context.Context, entry *models.StockLedgerEntry) error {
	query := `
		INSERT INTO stock_ledger_entries (id, product_id, movement_type, quantity_in, quantity_out, balance, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := r.db.Exec(ctx, query, entry.ID, entry.ProductID, entry.MovementType,
		entry.QuantityIn, entry.QuantityOut, entry.Balance, entry.Reference)
	return err
}

func (r *stockLedgerRepo) List(ctx context.Context, productID *uuid.UUID, limit, offset int) ([]*models.StockLedgerEntry, error) {
	query := `
		SELECT id, product_id, movement_type, quantity_in, quantity_out, balance, reference, created_at
		FROM stock_ledger_entries
		WHERE ($1::uuid IS NULL OR product_id = $1)
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.StockLedgerEntry
	for rows.Next() {
		entry := &models.StockLedgerEntry{}
		err := rows.Scan(&entry.ID, &entry.ProductID, &entry.MovementType,
			&entry.QuantityIn, &entry.QuantityOut, &entry.Balance, &entry.Reference, &entry.CreatedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
