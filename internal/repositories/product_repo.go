package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/models"
)

type ProductRepository interface {
	WithTx(tx pgx.Tx) ProductRepository
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Product, error)
	Count(ctx context.Context) (int, error)
	SetStockOnHand(ctx context.Context, id uuid.UUID, stock int) error
	ListLowStock(ctx context.Context) ([]*models.StockAlert, error)
	TotalStockValue(ctx context.Context) (decimal.Decimal, error)
}

type productRepo struct {
	db Querier
}

func NewProductRepo(db Querier) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) WithTx(tx pgx.Tx) ProductRepository {
	return &productRepo{db: tx}
}

const productColumns = `id, name, type, stock_on_hand, min_stock_level, unit_cost::text, created_at, updated_at`

func scanProduct(row pgx.Row) (*models.Product, error) {
	product := &models.Product{}
	var unitCost string
	err := row.Scan(&product.ID, &product.Name, &product.Type, &product.StockOnHand,
		&product.MinStockLevel, &unitCost, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}
	product.UnitCost, err = decimal.NewFromString(unitCost)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, name, type, stock_on_hand, min_stock_level, unit_cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, product.ID, product.Name, product.Type,
		product.StockOnHand, product.MinStockLevel, product.UnitCost.String())
	return err
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.db.QueryRow(ctx, query, id))
}

// GetForUpdate locks the product row for the duration of the enclosing
// transaction. Ledger appends use it to serialize per-product balance math.
func (r *productRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return scanProduct(r.db.QueryRow(ctx, query, id))
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, type = $2, min_stock_level = $3, unit_cost = $4, updated_at = NOW()
		WHERE id = $5
	`
	_, err := r.db.Exec(ctx, query, product.Name, product.Type,
		product.MinStockLevel, product.UnitCost.String(), product.ID)
	return err
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *productRepo) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *productRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}

// SetStockOnHand mirrors a committed ledger balance onto the product row.
// Only the ledger service calls this; workflow code never writes stock directly.
func (r *productRepo) SetStockOnHand(ctx context.Context, id uuid.UUID, stock int) error {
	query := `UPDATE products SET stock_on_hand = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, stock, id)
	return err
}

func (r *productRepo) ListLowStock(ctx context.Context) ([]*models.StockAlert, error) {
	query := `
		SELECT id, name, stock_on_hand, min_stock_level
		FROM products
		WHERE stock_on_hand < min_stock_level
		ORDER BY stock_on_hand - min_stock_level ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []*models.StockAlert
	for rows.Next() {
		alert := &models.StockAlert{}
		if err := rows.Scan(&alert.ProductID, &alert.ProductName, &alert.StockOnHand, &alert.MinStockLevel); err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, rows.Err()
}

func (r *productRepo) TotalStockValue(ctx context.Context) (decimal.Decimal, error) {
	var total string
	query := `SELECT COALESCE(SUM(stock_on_hand * unit_cost), 0)::text FROM products`
	if err := r.db.QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(total)
}
