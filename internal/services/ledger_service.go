package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/common"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/models"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/repositories"
)

// Movement directions accepted by AppendMovement.
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// AppendMovementInput describes one stock movement to record.
type AppendMovementInput struct {
	ProductID    uuid.UUID
	MovementType string
	Direction    string
	Quantity     int
	Reference    string
}

// LedgerService maintains the append-only stock ledger and mirrors each
// committed balance onto the product row.
type LedgerService interface {
	AppendMovement(ctx context.Context, in AppendMovementInput) (*models.StockLedgerEntry, error)
	// AppendInTx records a movement inside a caller-owned transaction. The
	// workflow engine uses it so consumption and production entries commit
	// atomically with the status change that caused them.
	AppendInTx(ctx context.Context, tx pgx.Tx, in AppendMovementInput) (*models.StockLedgerEntry, error)
	History(ctx context.Context, productID *uuid.UUID, limit, offset int) ([]*models.StockLedgerEntry, error)
}

type ledgerService struct {
	db          repositories.DB
	ledgerRepo  repositories.StockLedgerRepository
	productRepo repositories.ProductRepository
}

// NewLedgerService creates a new stock ledger service
func NewLedgerService(db repositories.DB, ledgerRepo repositories.StockLedgerRepository, productRepo repositories.ProductRepository) LedgerService {
	return &ledgerService{
		db:          db,
		ledgerRepo:  ledgerRepo,
		productRepo: productRepo,
	}
}

func validateMovement(in AppendMovementInput) error {
	if in.ProductID == uuid.Nil {
		return common.ValidationError("product_id", "is required")
	}
	if err := common.ValidatePositiveInteger(in.Quantity, "quantity", 1000000); err != nil {
		return err
	}
	if !models.ValidMovementType(in.MovementType) {
		return common.ValidationError("movement_type", "is not a known movement type")
	}
	switch in.Direction {
	case DirectionIn:
		if in.MovementType == models.MovementSale || in.MovementType == models.MovementWorkOrderConsumption {
			return common.ValidationError("direction", fmt.Sprintf("%s movements must be outbound", in.MovementType))
		}
	case DirectionOut:
		if in.MovementType == models.MovementPurchase || in.MovementType == models.MovementProduction {
			return common.ValidationError("direction", fmt.Sprintf("%s movements must be inbound", in.MovementType))
		}
	default:
		return common.ValidationError("direction", "must be 'in' or 'out'")
	}
	return nil
}

func (s *ledgerService) AppendMovement(ctx context.Context, in AppendMovementInput) (*models.StockLedgerEntry, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, common.TranslateStoreError(err)
	}
	defer tx.Rollback(ctx)

	entry, err := s.AppendInTx(ctx, tx, in)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, common.TranslateStoreError(err)
	}
	return entry, nil
}

func (s *ledgerService) AppendInTx(ctx context.Context, tx pgx.Tx, in AppendMovementInput) (*models.StockLedgerEntry, error) {
	if err := validateMovement(in); err != nil {
		return nil, err
	}

	products := s.productRepo.WithTx(tx)

	// Row lock on the product serializes concurrent appends per product, so
	// the balance chain never forks.
	product, err := products.GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, common.TranslateStoreError(err)
	}

	balance := product.StockOnHand
	if in.Direction == DirectionIn {
		balance += in.Quantity
	} else {
		balance -= in.Quantity
	}

	if balance < 0 && in.MovementType != models.MovementManualAdjustment {
		return nil, fmt.Errorf("%w: product %q has %d on hand, movement removes %d",
			common.ErrInsufficientStock, product.Name, product.StockOnHand, in.Quantity)
	}

	entry := &models.StockLedgerEntry{
		ID:           uuid.New(),
		ProductID:    in.ProductID,
		MovementType: in.MovementType,
		Balance:      balance,
	}
	if in.Reference != "" {
		ref := in.Reference
		entry.Reference = &ref
	}
	qty := in.Quantity
	if in.Direction == DirectionIn {
		entry.QuantityIn = &qty
	} else {
		entry.QuantityOut = &qty
	}

	if err := s.ledgerRepo.WithTx(tx).Append(ctx, entry); err != nil {
		return nil, common.TranslateStoreError(err)
	}
	if err := products.SetStockOnHand(ctx, in.ProductID, balance); err != nil {
		return nil, common.TranslateStoreError(err)
	}
	return entry, nil
}

func (s *ledgerService) History(ctx context.Context, productID *uuid.UUID, limit, offset int) ([]*models.StockLedgerEntry, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	entries, err := s.ledgerRepo.List(ctx, productID, limit, offset)
	if err != nil {
		return nil, common.TranslateStoreError(err)
	}
	return entries, nil
}

// ReplayBalance folds ledger entries in order and returns the resulting
// balance. Replaying a product's full history must reproduce its current
// stock on hand exactly.
func ReplayBalance(entries []*models.StockLedgerEntry) int {
	balance := 0
	for _, entry := range entries {
		balance += entry.SignedQuantity()
	}
	return balance
}
