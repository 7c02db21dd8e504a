package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/common"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/models"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/repositories"
)

// ProductInput carries the writable product fields. Stock on hand is absent
// on purpose: new products start at zero and stock only moves via the ledger.
type ProductInput struct {
	Name          string
	Type          string
	MinStockLevel int
	UnitCost      decimal.Decimal
}

// BOMLineInput is one component requirement in a new BOM.
type BOMLineInput struct {
	ComponentProductID uuid.UUID
	Quantity           int
}

// CreateBOMInput describes a new recipe for a finished good.
type CreateBOMInput struct {
	ProductID uuid.UUID
	Lines     []BOMLineInput
}

// CatalogService manages the product master data and bills of materials.
type CatalogService interface {
	CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, in ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, limit, offset int) ([]*models.Product, error)
	CreateBOM(ctx context.Context, in CreateBOMInput) (*models.BillOfMaterials, error)
	GetBOM(ctx context.Context, id uuid.UUID) (*models.BillOfMaterials, error)
	ListBOMs(ctx context.Context, limit, offset int) ([]*models.BillOfMaterials, error)
	DeleteBOM(ctx context.Context, id uuid.UUID) error
	ListOperators(ctx context.Context) ([]*models.UserProfile, error)
}

type catalogService struct {
	db          repositories.DB
	productRepo repositories.ProductRepository
	bomRepo     repositories.BOMRepository
	userRepo    repositories.UserProfileRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(db repositories.DB, productRepo repositories.ProductRepository, bomRepo repositories.BOMRepository, userRepo repositories.UserProfileRepository) CatalogService {
	return &catalogService{
		db:          db,
		productRepo: productRepo,
		bomRepo:     bomRepo,
		userRepo:    userRepo,
	}
}

func validateProductInput(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return common.ValidationError("name", "is required")
	}
	if len(in.Name) > 255 {
		return common.ValidationError("name", "cannot exceed 255 characters")
	}
	if !models.ValidProductType(in.Type) {
		return common.ValidationError("type", "must be 'raw_material' or 'finished_good'")
	}
	if in.MinStockLevel < 0 {
		return common.ValidationError("min_stock_level", "cannot be negative")
	}
	if in.UnitCost.IsNegative() {
		return common.ValidationError("unit_cost", "cannot be negative")
	}
	return nil
}

func (s *catalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(in.Name),
		Type:          in.Type,
		StockOnHand:   0,
		MinStockLevel: in.MinStockLevel,
		UnitCost:      in.UnitCost,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, common.TranslateStoreError(err)
	}
	return s.GetProduct(ctx, product.ID)
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", id, common.TranslateStoreError(err))
	}
	return product, nil
}

// UpdateProduct changes master data only. Stock on hand is never writable
// here, it is derived from the ledger.
func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, in ProductInput) (*models.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", id, common.TranslateStoreError(err))
	}

	product.Name = strings.TrimSpace(in.Name)
	product.Type = in.Type
	product.MinStockLevel = in.MinStockLevel
	product.UnitCost = in.UnitCost

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, common.TranslateStoreError(err)
	}
	return s.GetProduct(ctx, id)
}

// DeleteProduct removes a product that nothing references. Products used by
// BOM lines, orders or ledger entries are protected by foreign keys and the
// violation surfaces as a referential integrity error.
func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("product %s: %w", id, common.TranslateStoreError(err))
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return common.TranslateStoreError(err)
	}
	return nil
}

func (s *catalogService) ListProducts(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	products, err := s.productRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, common.TranslateStoreError(err)
	}
	return products, nil
}

// CreateBOM writes the BOM header and all lines in one transaction. A recipe
// with a missing component or an invalid line never partially exists.
func (s *catalogService) CreateBOM(ctx context.Context, in CreateBOMInput) (*models.BillOfMaterials, error) {
	if len(in.Lines) == 0 {
		return nil, common.ValidationError("lines", "at least one component line is required")
	}

	parent, err := s.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", in.ProductID, common.TranslateStoreError(err))
	}
	if parent.Type != models.ProductTypeFinishedGood {
		return nil, common.ValidationError("product_id", "must reference a finished good")
	}

	seen := make(map[uuid.UUID]bool, len(in.Lines))
	for i, line := range in.Lines {
		if line.ComponentProductID == uuid.Nil {
			return nil, common.ValidationError(fmt.Sprintf("lines[%d].component_product_id", i), "is required")
		}
		if line.ComponentProductID == in.ProductID {
			return nil, fmt.Errorf("%w: a product cannot be a component of its own BOM", common.ErrConflict)
		}
		if seen[line.ComponentProductID] {
			return nil, common.ValidationError(fmt.Sprintf("lines[%d].component_product_id", i), "is listed more than once")
		}
		seen[line.ComponentProductID] = true
		if err := common.ValidatePositiveInteger(line.Quantity, fmt.Sprintf("lines[%d].quantity", i), 1000000); err != nil {
			return nil, err
		}
	}

	bom := &models.BillOfMaterials{
		ID:        uuid.New(),
		ProductID: in.ProductID,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, common.TranslateStoreError(err)
	}
	defer tx.Rollback(ctx)

	boms := s.bomRepo.WithTx(tx)
	if err := boms.Create(ctx, bom); err != nil {
		return nil, common.TranslateStoreError(err)
	}
	for _, line := range in.Lines {
		err := boms.CreateLine(ctx, &models.BOMLine{
			ID:                 uuid.New(),
			BOMID:              bom.ID,
			ComponentProductID: line.ComponentProductID,
			Quantity:           line.Quantity,
		})
		if err != nil {
			return nil, common.TranslateStoreError(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, common.TranslateStoreError(err)
	}
	return s.GetBOM(ctx, bom.ID)
}

func (s *catalogService) GetBOM(ctx context.Context, id uuid.UUID) (*models.BillOfMaterials, error) {
	bom, err := s.bomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("bom %s: %w", id, common.TranslateStoreError(err))
	}
	return bom, nil
}

func (s *catalogService) ListBOMs(ctx context.Context, limit, offset int) ([]*models.BillOfMaterials, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	boms, err := s.bomRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, common.TranslateStoreError(err)
	}
	return boms, nil
}

// DeleteBOM removes the lines and the header together. BOMs referenced by
// manufacturing orders are protected by foreign keys.
func (s *catalogService) DeleteBOM(ctx context.Context, id uuid.UUID) error {
	if _, err := s.bomRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("bom %s: %w", id, common.TranslateStoreError(err))
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return common.TranslateStoreError(err)
	}
	defer tx.Rollback(ctx)

	boms := s.bomRepo.WithTx(tx)
	if err := boms.DeleteLines(ctx, id); err != nil {
		return common.TranslateStoreError(err)
	}
	if err := boms.Delete(ctx, id); err != nil {
		return common.TranslateStoreError(err)
	}
	return common.TranslateStoreError(tx.Commit(ctx))
}

// ListOperators returns the operator profiles available for assignment.
func (s *catalogService) ListOperators(ctx context.Context) ([]*models.UserProfile, error) {
	operators, err := s.userRepo.ListByRole(ctx, models.RoleOperator)
	if err != nil {
		return nil, common.TranslateStoreError(err)
	}
	return operators, nil
}
