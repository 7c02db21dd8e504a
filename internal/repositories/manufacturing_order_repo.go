package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/models"
)

type ManufacturingOrderRepository interface {
	WithTx(tx pgx.Tx) ManufacturingOrderRepository
	Create(ctx context.Context, order *models.ManufacturingOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ManufacturingOrder, error)
	// GetForUpdate locks the order row for the rest of the transaction.
	// Completions of sibling work orders serialize on this lock.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.ManufacturingOrder, error)
	List(ctx context.Context, status string, limit, offset int) ([]*models.ManufacturingOrder, error)
	ListRecent(ctx context.Context, limit int) ([]*models.ManufacturingOrder, error)
	// UpdateStatusIf advances the order status only when the current status is
	// one of allowedCurrent, and reports whether a row was updated.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, newStatus string, allowedCurrent []string) (bool, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	CountCompletedSince(ctx context.Context, since time.Time) (int, error)
}

type manufacturingOrderRepo struct {
	db Querier
}

func NewManufacturingOrderRepo(db Querier) ManufacturingOrderRepository {
	return &manufacturingOrderRepo{db: db}
}

func (r *manufacturingOrderRepo) WithTx(tx pgx.Tx) ManufacturingOrderRepository {
	return &manufacturingOrderRepo{db: tx}
}

const moColumns = `id, product_id, bom_id, quantity_to_produce, status, assignee_id, created_at, updated_at`

func scanManufacturingOrder(row pgx.Row) (*models.ManufacturingOrder, error) {
	order := &models.ManufacturingOrder{}
	err := row.Scan(&order.ID, &order.ProductID, &order.BOMID, &order.QuantityToProduce,
		&order.Status, &order.AssigneeID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *manufacturingOrderRepo) Create(ctx context.Context, order *models.ManufacturingOrder) error {
	query := `
		INSERT INTO manufacturing_orders (id, product_id, bom_id, quantity_to_produce, status, assignee_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, order.ID, order.ProductID, order.BOMID,
		order.QuantityToProduce, order.Status, order.AssigneeID)
	return err
}

func (r *manufacturingOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ManufacturingOrder, error) {
	query := `SELECT ` + moColumns + ` FROM manufacturing_orders WHERE id = $1`
	return scanManufacturingOrder(r.db.QueryRow(ctx, query, id))
}

func (r *manufacturingOrderRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.ManufacturingOrder, error) {
	query := `SELECT ` + moColumns + ` FROM manufacturing_orders WHERE id = $1 FOR UPDATE`
	return scanManufacturingOrder(r.db.QueryRow(ctx, query, id))
}

func (r *manufacturingOrderRepo) List(ctx context.Context, status string, limit, offset int) ([]*models.ManufacturingOrder, error) {
	query := `
		SELECT ` + moColumns + `
		FROM manufacturing_orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.ManufacturingOrder
	for rows.Next() {
		order, err := scanManufacturingOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *manufacturingOrderRepo) ListRecent(ctx context.Context, limit int) ([]*models.ManufacturingOrder, error) {
	return r.List(ctx, "", limit, 0)
}

func (r *manufacturingOrderRepo) UpdateStatusIf(ctx context.Context, id uuid.UUID, newStatus string, allowedCurrent []string) (bool, error) {
	query := `
		UPDATE manufacturing_orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = ANY($3)
	`
	tag, err := r.db.Exec(ctx, query, newStatus, id, allowedCurrent)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *manufacturingOrderRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM manufacturing_orders WHERE status = $1`, status).Scan(&count)
	return count, err
}

func (r *manufacturingOrderRepo) CountCompletedSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM manufacturing_orders WHERE status = 'completed' AND updated_at >= $1`
	err := r.db.QueryRow(ctx, query, since).Scan(&count)
	return count, err
}
