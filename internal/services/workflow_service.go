package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/common"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/models"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/repositories"
)

// CreateManufacturingOrderInput is a production request: make Quantity units
// of the product, optionally pre-assigning every work order to an operator.
type CreateManufacturingOrderInput struct {
	ProductID  uuid.UUID
	Quantity   int
	AssigneeID *uuid.UUID
}

// CreateManufacturingOrderResult reports the new order and the size of the
// work-order fan-out.
type CreateManufacturingOrderResult struct {
	MOID              uuid.UUID `json:"mo_id"`
	WorkOrdersCreated int       `json:"work_orders_created"`
}

// WorkflowService is the order workflow engine: it turns production requests
// into a manufacturing order plus one work order per BOM line, and reconciles
// work-order completions into order status and stock movements.
type WorkflowService interface {
	CreateManufacturingOrder(ctx context.Context, in CreateManufacturingOrderInput) (*CreateManufacturingOrderResult, error)
	ConfirmManufacturingOrder(ctx context.Context, moID uuid.UUID) error
	CancelManufacturingOrder(ctx context.Context, moID uuid.UUID) error
	GetManufacturingOrder(ctx context.Context, moID uuid.UUID) (*models.ManufacturingOrder, error)
	ListManufacturingOrders(ctx context.Context, status string, limit, offset int) ([]*models.ManufacturingOrder, error)
	StartWorkOrder(ctx context.Context, woID, operatorID uuid.UUID) (*models.WorkOrder, error)
	CompleteWorkOrder(ctx context.Context, woID, operatorID uuid.UUID) (*models.WorkOrder, error)
	CancelWorkOrder(ctx context.Context, woID uuid.UUID) error
	ListWorkOrders(ctx context.Context, operatorID *uuid.UUID, status string, limit, offset int) ([]*models.WorkOrderDetail, error)
}

type workflowService struct {
	db          repositories.DB
	moRepo      repositories.ManufacturingOrderRepository
	woRepo      repositories.WorkOrderRepository
	bomRepo     repositories.BOMRepository
	productRepo repositories.ProductRepository
	userRepo    repositories.UserProfileRepository
	ledger      LedgerService
}

// NewWorkflowService creates the order workflow engine. All multi-row writes
// run inside a single transaction on db.
func NewWorkflowService(
	db repositories.DB,
	moRepo repositories.ManufacturingOrderRepository,
	woRepo repositories.WorkOrderRepository,
	bomRepo repositories.BOMRepository,
	productRepo repositories.ProductRepository,
	userRepo repositories.UserProfileRepository,
	ledger LedgerService,
) WorkflowService {
	return &workflowService{
		db:          db,
		moRepo:      moRepo,
		woRepo:      woRepo,
		bomRepo:     bomRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		ledger:      ledger,
	}
}

// CreateManufacturingOrder validates the request, resolves the active BOM and
// writes the order plus its work-order fan-out as one atomic unit. A failure
// at any point leaves no partial order behind.
func (s *workflowService) CreateManufacturingOrder(ctx context.Context, in CreateManufacturingOrderInput) (*CreateManufacturingOrderResult, error) {
	// All validation happens before the first write.
	if err := common.ValidatePositiveInteger(in.Quantity, "quantity", 1000000); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", in.ProductID, common.TranslateStoreError(err))
	}
	if product.Type != models.ProductTypeFinishedGood {
		return nil, common.ValidationError("product_id", "must reference a finished good")
	}

	if in.AssigneeID != nil {
		assignee, err := s.userRepo.GetByID(ctx, *in.AssigneeID)
		if err != nil {
			return nil, fmt.Errorf("assignee %s: %w", *in.AssigneeID, common.TranslateStoreError(err))
		}
		if assignee.Role != models.RoleOperator {
			return nil, common.ValidationError("assignee_id", "must reference an operator profile")
		}
	}

	bom, err := s.bomRepo.GetActiveForProduct(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product %q", common.ErrNoBOMFound, product.Name)
		}
		return nil, common.TranslateStoreError(err)
	}
	if len(bom.Lines) == 0 {
		return nil, fmt.Errorf("%w: product %q has a BOM without lines", common.ErrNoBOMFound, product.Name)
	}

	order := &models.ManufacturingOrder{
		ID:                uuid.New(),
		ProductID:         in.ProductID,
		BOMID:             bom.ID,
		QuantityToProduce: in.Quantity,
		Status:            models.MOStatusDraft,
		AssigneeID:        in.AssigneeID,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, common.TranslateStoreError(err)
	}
	defer tx.Rollback(ctx)

	if err := s.moRepo.WithTx(tx).Create(ctx, order); err != nil {
		return nil, common.TranslateStoreError(err)
	}

	workOrders := s.woRepo.WithTx(tx)
	for _, line := range bom.Lines {
		wo := &models.WorkOrder{
			ID:                 uuid.New(),
			MOID:               order.ID,
			ComponentProductID: line.ComponentProductID,
			Name:               fmt.Sprintf("Prepare %s", line.ComponentName),
			RequiredQuantity:   line.Quantity * in.Quantity,
			Status:             models.WOStatusPending,
			OperatorID:         in.AssigneeID,
		}
		if err := workOrders.Create(ctx, wo); err != nil {
			return nil, common.TranslateStoreError(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, common.TranslateStoreError(err)
	}

	return &CreateManufacturingOrderResult{
		MOID:              order.ID,
		WorkOrdersCreated: len(bom.Lines),
	}, nil
}

func (s *workflowService) ConfirmManufacturingOrder(ctx context.Context, moID uuid.UUID) error {
	ok, err := s.moRepo.UpdateStatusIf(ctx, moID, models.MOStatusConfirmed, []string{models.MOStatusDraft})
	if err != nil {
		return common.TranslateStoreError(err)
	}
	if !ok {
		return s.classifyOrderTransitionFailure(ctx, moID, "confirm")
	}
	return nil
}

// CancelManufacturingOrder cancels a non-terminal order and all of its still
// open work orders in one transaction.
func (s *workflowService) CancelManufacturingOrder(ctx context.Context, moID uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return common.TranslateStoreError(err)
	}
	defer tx.Rollback(ctx)

	ok, err := s.moRepo.WithTx(tx).UpdateStatusIf(ctx, moID, models.MOStatusCancelled,
		[]string{models.MOStatusDraft, models.MOStatusConfirmed, models.MOStatusInProgress})
	if err != nil {
		return common.TranslateStoreError(err)
	}
	if !ok {
		return s.classifyOrderTransitionFailure(ctx, moID, "cancel")
	}

	if _, err := s.woRepo.WithTx(tx).CancelOpenByMO(ctx, moID); err != nil {
		return common.TranslateStoreError(err)
	}
	return common.TranslateStoreError(tx.Commit(ctx))
}

func (s *workflowService) classifyOrderTransitionFailure(ctx context.Context, moID uuid.UUID, action string) error {
	order, err := s.moRepo.GetByID(ctx, moID)
	if err != nil {
		return fmt.Errorf("manufacturing order %s: %w", moID, common.TranslateStoreError(err))
	}
	return fmt.Errorf("%w: cannot %s manufacturing order in status %q", common.ErrConflict, action, order.Status)
}

func (s *workflowService) GetManufacturingOrder(ctx context.Context, moID uuid.UUID) (*models.ManufacturingOrder, error) {
	order, err := s.moRepo.GetByID(ctx, moID)
	if err != nil {
		return nil, fmt.Errorf("manufacturing order %s: %w", moID, common.TranslateStoreError(err))
	}
	order.WorkOrders, err = s.woRepo.ListByMO(ctx, moID)
	if err != nil {
		return nil, common.TranslateStoreError(err)
	}
	return order, nil
}

func (s *workflowService) ListManufacturingOrders(ctx context.Context, status string, limit, offset int) ([]*models.ManufacturingOrder, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	orders, err := s.moRepo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, common.TranslateStoreError(err)
	}
	return orders, nil
}

// StartWorkOrder moves a pending work order owned by the operator into
// in_progress, and pulls the parent order into in_progress with it.
func (s *workflowService) StartWorkOrder(ctx context.Context, woID, operatorID uuid.UUID) (*models.WorkOrder, error) {
	wo, err := s.getOwnedWorkOrder(ctx, woID, operatorID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, common.TranslateStoreError(err)
	}
	defer tx.Rollback(ctx)

	workOrders := s.woRepo.WithTx(tx)
	ok, err := workOrders.StartIfOwned(ctx, woID, operatorID)
	if err != nil {
		return nil, common.TranslateStoreError(err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: work order is not pending", common.ErrConflict)
	}

	// First started work order drags the parent order into in_progress.
	_, err = s.moRepo.WithTx(tx).UpdateStatusIf(ctx, wo.MOID, models.MOStatusInProgress,
		[]string{models.MOStatusDraft, models.MOStatusConfirmed})
	if err != nil {
		return nil, common.TranslateStoreError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, common.TranslateStoreError(err)
	}
	wo.Status = models.WOStatusInProgress
	return wo, nil
}

// CompleteWorkOrder finishes a work order owned by the operator. In the same
// transaction it records the component consumption in the stock ledger, and
// when the last open work order of the order completes it advances the order
// to completed and books the produced quantity of the finished good.
func (s *workflowService) CompleteWorkOrder(ctx context.Context, woID, operatorID uuid.UUID) (*models.WorkOrder, error) {
	wo, err := s.getOwnedWorkOrder(ctx, woID, operatorID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, common.TranslateStoreError(err)
	}
	defer tx.Rollback(ctx)

	orders := s.moRepo.WithTx(tx)
	// Lock the parent order before touching its work orders. Without this,
	// two transactions completing the last two open work orders each count
	// the other's uncommitted row as still open, and neither finishes the
	// order.
	order, err := orders.GetForUpdate(ctx, wo.MOID)
	if err != nil {
		return nil, fmt.Errorf("manufacturing order %s: %w", wo.MOID, common.TranslateStoreError(err))
	}

	workOrders := s.woRepo.WithTx(tx)
	ok, err := workOrders.CompleteIfOwned(ctx, woID, operatorID)
	if err != nil {
		return nil, common.TranslateStoreError(err)
	}
	if !ok {
		// Lost the guard: either a concurrent caller completed it first or
		// the work order was cancelled.
		current, err := workOrders.GetByID(ctx, woID)
		if err != nil {
			return nil, fmt.Errorf("work order %s: %w", woID, common.TranslateStoreError(err))
		}
		if current.Status == models.WOStatusCompleted {
			return nil, fmt.Errorf("%w: work order %s", common.ErrAlreadyCompleted, woID)
		}
		return nil, fmt.Errorf("%w: cannot complete work order in status %q", common.ErrConflict, current.Status)
	}

	_, err = s.ledger.AppendInTx(ctx, tx, AppendMovementInput{
		ProductID:    wo.ComponentProductID,
		MovementType: models.MovementWorkOrderConsumption,
		Direction:    DirectionOut,
		Quantity:     wo.RequiredQuantity,
		Reference:    fmt.Sprintf("WO:%s", wo.ID),
	})
	if err != nil {
		return nil, err
	}

	remaining, err := workOrders.CountOpenByMO(ctx, wo.MOID)
	if err != nil {
		return nil, common.TranslateStoreError(err)
	}
	if remaining == 0 {
		if err := s.finishOrder(ctx, tx, order); err != nil {
			return nil, err
		}
	} else {
		_, err = orders.UpdateStatusIf(ctx, wo.MOID, models.MOStatusInProgress,
			[]string{models.MOStatusDraft, models.MOStatusConfirmed})
		if err != nil {
			return nil, common.TranslateStoreError(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, common.TranslateStoreError(err)
	}
	wo.Status = models.WOStatusCompleted
	return wo, nil
}

// finishOrder advances the order to completed and books the finished goods
// into stock. Runs inside the completion transaction; order is the row locked
// at the start of it.
func (s *workflowService) finishOrder(ctx context.Context, tx pgx.Tx, order *models.ManufacturingOrder) error {
	ok, err := s.moRepo.WithTx(tx).UpdateStatusIf(ctx, order.ID, models.MOStatusCompleted,
		[]string{models.MOStatusDraft, models.MOStatusConfirmed, models.MOStatusInProgress})
	if err != nil {
		return common.TranslateStoreError(err)
	}
	if !ok {
		return fmt.Errorf("%w: manufacturing order %s is already terminal", common.ErrConflict, order.ID)
	}

	_, err = s.ledger.AppendInTx(ctx, tx, AppendMovementInput{
		ProductID:    order.ProductID,
		MovementType: models.MovementProduction,
		Direction:    DirectionIn,
		Quantity:     order.QuantityToProduce,
		Reference:    fmt.Sprintf("MO:%s", order.ID),
	})
	return err
}

func (s *workflowService) CancelWorkOrder(ctx context.Context, woID uuid.UUID) error {
	ok, err := s.woRepo.CancelIfOpen(ctx, woID)
	if err != nil {
		return common.TranslateStoreError(err)
	}
	if !ok {
		wo, err := s.woRepo.GetByID(ctx, woID)
		if err != nil {
			return fmt.Errorf("work order %s: %w", woID, common.TranslateStoreError(err))
		}
		return fmt.Errorf("%w: cannot cancel work order in status %q", common.ErrConflict, wo.Status)
	}
	return nil
}

func (s *workflowService) ListWorkOrders(ctx context.Context, operatorID *uuid.UUID, status string, limit, offset int) ([]*models.WorkOrderDetail, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	details, err := s.woRepo.ListDetailed(ctx, operatorID, status, limit, offset)
	if err != nil {
		return nil, common.TranslateStoreError(err)
	}
	return details, nil
}

// getOwnedWorkOrder fetches a work order and hides its existence from callers
// that do not own it.
func (s *workflowService) getOwnedWorkOrder(ctx context.Context, woID, operatorID uuid.UUID) (*models.WorkOrder, error) {
	wo, err := s.woRepo.GetByID(ctx, woID)
	if err != nil {
		return nil, fmt.Errorf("work order %s: %w", woID, common.TranslateStoreError(err))
	}
	if wo.OperatorID == nil || *wo.OperatorID != operatorID {
		return nil, common.NotFoundError(fmt.Sprintf("work order %s for operator", woID))
	}
	return wo, nil
}
