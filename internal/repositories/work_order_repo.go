package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/models"
)

type WorkOrderRepository interface {
	WithTx(tx pgx.Tx) WorkOrderRepository
	Create(ctx context.Context, wo *models.WorkOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.WorkOrder, error)
	ListByMO(ctx context.Context, moID uuid.UUID) ([]*models.WorkOrder, error)
	// ListDetailed joins work orders with their parent order and finished
	// product; operatorID and status filters are optional.
	ListDetailed(ctx context.Context, operatorID *uuid.UUID, status string, limit, offset int) ([]*models.WorkOrderDetail, error)
	// Guarded transitions: each reports whether a row changed so callers can
	// distinguish a won race from a lost one.
	StartIfOwned(ctx context.Context, id, operatorID uuid.UUID) (bool, error)
	CompleteIfOwned(ctx context.Context, id, operatorID uuid.UUID) (bool, error)
	CancelIfOpen(ctx context.Context, id uuid.UUID) (bool, error)
	CancelOpenByMO(ctx context.Context, moID uuid.UUID) (int64, error)
	CountOpenByMO(ctx context.Context, moID uuid.UUID) (int, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	OperatorAnalytics(ctx context.Context) ([]*models.OperatorStats, error)
}

type workOrderRepo struct {
	db Querier
}

func NewWorkOrderRepo(db Querier) WorkOrderRepository {
	return &workOrderRepo{db: db}
}

func (r *workOrderRepo) WithTx(tx pgx.Tx) WorkOrderRepository {
	return &workOrderRepo{db: tx}
}

const woColumns = `id, mo_id, component_product_id, name, required_quantity, status, operator_id, created_at, updated_at`

func scanWorkOrder(row pgx.Row) (*models.WorkOrder, error) {
	wo := &models.WorkOrder{}
	err := row.Scan(&wo.ID, &wo.MOID, &wo.ComponentProductID, &wo.Name,
		&wo.RequiredQuantity, &wo.Status, &wo.OperatorID, &wo.CreatedAt, &wo.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return wo, nil
}

func (r *workOrderRepo) Create(ctx context.Context, wo *models.WorkOrder) error {
	query := `
		INSERT INTO work_orders (id, mo_id, component_product_id, name, required_quantity, status, operator_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, wo.ID, wo.MOID, wo.ComponentProductID, wo.Name,
		wo.RequiredQuantity, wo.Status, wo.OperatorID)
	return err
}

func (r *workOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.WorkOrder, error) {
	query := `SELECT ` + woColumns + ` FROM work_orders WHERE id = $1`
	return scanWorkOrder(r.db.QueryRow(ctx, query, id))
}

func (r *workOrderRepo) ListByMO(ctx context.Context, moID uuid.UUID) ([]*models.WorkOrder, error) {
	query := `SELECT ` + woColumns + ` FROM work_orders WHERE mo_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, moID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wos []*models.WorkOrder
	for rows.Next() {
		wo, err := scanWorkOrder(rows)
		if err != nil {
			return nil, err
		}
		wos = append(wos, wo)
	}
	return wos, rows.Err()
}

func (r *workOrderRepo) ListDetailed(ctx context.Context, operatorID *uuid.UUID, status string, limit, offset int) ([]*models.WorkOrderDetail, error) {
	query := `
		SELECT w.id, w.mo_id, w.component_product_id, w.name, w.required_quantity, w.status, w.operator_id, w.created_at, w.updated_at,
		       m.quantity_to_produce, m.status, p.name
		FROM work_orders w
		JOIN manufacturing_orders m ON m.id = w.mo_id
		JOIN products p ON p.id = m.product_id
		WHERE ($1::uuid IS NULL OR w.operator_id = $1)
		  AND ($2 = '' OR w.status = $2)
		ORDER BY w.created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, operatorID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []*models.WorkOrderDetail
	for rows.Next() {
		d := &models.WorkOrderDetail{}
		err := rows.Scan(&d.ID, &d.MOID, &d.ComponentProductID, &d.Name, &d.RequiredQuantity,
			&d.Status, &d.OperatorID, &d.CreatedAt, &d.UpdatedAt,
			&d.OrderQuantity, &d.OrderStatus, &d.ProductName)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *workOrderRepo) StartIfOwned(ctx context.Context, id, operatorID uuid.UUID) (bool, error) {
	query := `
		UPDATE work_orders
		SET status = 'in_progress', updated_at = NOW()
		WHERE id = $1 AND operator_id = $2 AND status = 'pending'
	`
	tag, err := r.db.Exec(ctx, query, id, operatorID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CompleteIfOwned performs the status-guarded completion update. Concurrent
// completions of the same work order serialize here: only the first call
// changes a row.
func (r *workOrderRepo) CompleteIfOwned(ctx context.Context, id, operatorID uuid.UUID) (bool, error) {
	query := `
		UPDATE work_orders
		SET status = 'completed', updated_at = NOW()
		WHERE id = $1 AND operator_id = $2 AND status IN ('pending', 'in_progress')
	`
	tag, err := r.db.Exec(ctx, query, id, operatorID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *workOrderRepo) CancelIfOpen(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE work_orders
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'in_progress')
	`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *workOrderRepo) CancelOpenByMO(ctx context.Context, moID uuid.UUID) (int64, error) {
	query := `
		UPDATE work_orders
		SET status = 'cancelled', updated_at = NOW()
		WHERE mo_id = $1 AND status IN ('pending', 'in_progress')
	`
	tag, err := r.db.Exec(ctx, query, moID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *workOrderRepo) CountOpenByMO(ctx context.Context, moID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM work_orders WHERE mo_id = $1 AND status IN ('pending', 'in_progress')`
	err := r.db.QueryRow(ctx, query, moID).Scan(&count)
	return count, err
}

func (r *workOrderRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM work_orders WHERE status = $1`, status).Scan(&count)
	return count, err
}

func (r *workOrderRepo) OperatorAnalytics(ctx context.Context) ([]*models.OperatorStats, error) {
	query := `
		SELECT u.id, u.full_name,
		       COUNT(*) FILTER (WHERE w.status = 'pending'),
		       COUNT(*) FILTER (WHERE w.status = 'in_progress'),
		       COUNT(*) FILTER (WHERE w.status = 'completed')
		FROM work_orders w
		JOIN user_profiles u ON u.id = w.operator_id
		GROUP BY u.id, u.full_name
		ORDER BY u.full_name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*models.OperatorStats
	for rows.Next() {
		s := &models.OperatorStats{}
		if err := rows.Scan(&s.OperatorID, &s.FullName, &s.Assigned, &s.InProgress, &s.Completed); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
