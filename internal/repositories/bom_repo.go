package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/models"
)

type BOMRepository interface {
	WithTx(tx pgx.Tx) BOMRepository
	Create(ctx context.Context, bom *models.BillOfMaterials) error
	CreateLine(ctx context.Context, line *models.BOMLine) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.BillOfMaterials, error)
	GetActiveForProduct(ctx context.Context, productID uuid.UUID) (*models.BillOfMaterials, error)
	GetLines(ctx context.Context, bomID uuid.UUID) ([]*models.BOMLine, error)
	List(ctx context.Context, limit, offset int) ([]*models.BillOfMaterials, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteLines(ctx context.Context, bomID uuid.UUID) error
	// Count counts products with an active BOM. Only the newest BOM per
	// product is active, so superseded revisions do not inflate the count.
	Count(ctx context.Context) (int, error)
}

type bomRepo struct {
	db Querier
}

func NewBOMRepo(db Querier) BOMRepository {
	return &bomRepo{db: db}
}

func (r *bomRepo) WithTx(tx pgx.Tx) BOMRepository {
	return &bomRepo{db: tx}
}

func (r *bomRepo) Create(ctx context.Context, bom *models.BillOfMaterials) error {
	query := `INSERT INTO boms (id, product_id, created_at) VALUES ($1, $2, NOW())`
	_, err := r.db.Exec(ctx, query, bom.ID, bom.ProductID)
	return err
}

func (r *bomRepo) CreateLine(ctx context.Context, line *models.BOMLine) error {
	query := `
		INSERT INTO bom_lines (id, bom_id, component_product_id, quantity)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, line.ID, line.BOMID, line.ComponentProductID, line.Quantity)
	return err
}

func (r *bomRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.BillOfMaterials, error) {
	bom := &models.BillOfMaterials{}
	query := `SELECT id, product_id, created_at FROM boms WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&bom.ID, &bom.ProductID, &bom.CreatedAt)
	if err != nil {
		return nil, err
	}
	bom.Lines, err = r.GetLines(ctx, bom.ID)
	if err != nil {
		return nil, err
	}
	return bom, nil
}

// GetActiveForProduct resolves the BOM the workflow engine fans out from:
// the most recently created BOM for the product, lines included.
func (r *bomRepo) GetActiveForProduct(ctx context.Context, productID uuid.UUID) (*models.BillOfMaterials, error) {
	bom := &models.BillOfMaterials{}
	query := `
		SELECT id, product_id, created_at
		FROM boms
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query, productID).Scan(&bom.ID, &bom.ProductID, &bom.CreatedAt)
	if err != nil {
		return nil, err
	}
	bom.Lines, err = r.GetLines(ctx, bom.ID)
	if err != nil {
		return nil, err
	}
	return bom, nil
}

func (r *bomRepo) GetLines(ctx context.Context, bomID uuid.UUID) ([]*models.BOMLine, error) {
	query := `
		SELECT l.id, l.bom_id, l.component_product_id, p.name, l.quantity
		FROM bom_lines l
		JOIN products p ON p.id = l.component_product_id
		WHERE l.bom_id = $1
	`
	rows, err := r.db.Query(ctx, query, bomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*models.BOMLine
	for rows.Next() {
		line := &models.BOMLine{}
		if err := rows.Scan(&line.ID, &line.BOMID, &line.ComponentProductID, &line.ComponentName, &line.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *bomRepo) List(ctx context.Context, limit, offset int) ([]*models.BillOfMaterials, error) {
	query := `
		SELECT id, product_id, created_at
		FROM boms
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boms []*models.BillOfMaterials
	for rows.Next() {
		bom := &models.BillOfMaterials{}
		if err := rows.Scan(&bom.ID, &bom.ProductID, &bom.CreatedAt); err != nil {
			return nil, err
		}
		boms = append(boms, bom)
	}
	return boms, rows.Err()
}

func (r *bomRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM boms WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *bomRepo) DeleteLines(ctx context.Context, bomID uuid.UUID) error {
	query := `DELETE FROM bom_lines WHERE bom_id = $1`
	_, err := r.db.Exec(ctx, query, bomID)
	return err
}

func (r *bomRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(DISTINCT product_id) FROM boms`).Scan(&count)
	return count, err
}
