package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/common"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/models"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/services"
)

// StockLedgerHandlers handles HTTP requests for the stock ledger
type StockLedgerHandlers struct {
	ledgerService services.LedgerService
}

// NewStockLedgerHandlers creates a new stock ledger handlers instance
func NewStockLedgerHandlers(ledgerService services.LedgerService) *StockLedgerHandlers {
	return &StockLedgerHandlers{ledgerService: ledgerService}
}

type appendMovementRequest struct {
	ProductID    string `json:"product_id" validate:"required,uuid4"`
	MovementType string `json:"movement_type" validate:"required,oneof=purchase production work_order_consumption manual_adjustment sale"`
	Direction    string `json:"direction" validate:"required,oneof=in out"`
	Quantity     int    `json:"quantity" validate:"required,gt=0"`
	Reference    string `json:"reference" validate:"omitempty,max=255"`
}

// AppendMovement handles POST /v1/stock-ledger
func (h *StockLedgerHandlers) AppendMovement(c echo.Context) error {
	var req appendMovementRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	productID, err := common.ValidateUUID(req.ProductID, "product_id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	entry, err := h.ledgerService.AppendMovement(c.Request().Context(), services.AppendMovementInput{
		ProductID:    productID,
		MovementType: req.MovementType,
		Direction:    req.Direction,
		Quantity:     req.Quantity,
		Reference:    req.Reference,
	})
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// ListMovements handles GET /v1/stock-ledger
func (h *StockLedgerHandlers) ListMovements(c echo.Context) error {
	var productID *uuid.UUID
	if filter := c.QueryParam("product_id"); filter != "" {
		id, err := common.ValidateUUID(filter, "product_id")
		if err != nil {
			return common.SendDomainError(c, err)
		}
		productID = &id
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	entries, err := h.ledgerService.History(c.Request().Context(), productID, limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if entries == nil {
		entries = []*models.StockLedgerEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}
