package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/common"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/models"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/services"
)

// ManufacturingOrderHandlers handles HTTP requests for manufacturing orders
type ManufacturingOrderHandlers struct {
	workflowService services.WorkflowService
}

// NewManufacturingOrderHandlers creates a new manufacturing order handlers instance
func NewManufacturingOrderHandlers(workflowService services.WorkflowService) *ManufacturingOrderHandlers {
	return &ManufacturingOrderHandlers{workflowService: workflowService}
}

type createManufacturingOrderRequest struct {
	ProductID  string  `json:"product_id" validate:"required,uuid4"`
	Quantity   int     `json:"quantity" validate:"required,gt=0"`
	AssigneeID *string `json:"assignee_id" validate:"omitempty,uuid4"`
}

// CreateManufacturingOrder handles POST /v1/manufacturing-orders
func (h *ManufacturingOrderHandlers) CreateManufacturingOrder(c echo.Context) error {
	var req createManufacturingOrderRequest
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

	input := services.CreateManufacturingOrderInput{
		ProductID: productID,
		Quantity:  req.Quantity,
	}
	if req.AssigneeID != nil && *req.AssigneeID != "" {
		assigneeID, err := common.ValidateUUID(*req.AssigneeID, "assignee_id")
		if err != nil {
			return common.SendDomainError(c, err)
		}
		input.AssigneeID = &assigneeID
	}

	result, err := h.workflowService.CreateManufacturingOrder(c.Request().Context(), input)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

// GetManufacturingOrder handles GET /v1/manufacturing-orders/:id
func (h *ManufacturingOrderHandlers) GetManufacturingOrder(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	order, err := h.workflowService.GetManufacturingOrder(c.Request().Context(), id)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// ListManufacturingOrders handles GET /v1/manufacturing-orders
func (h *ManufacturingOrderHandlers) ListManufacturingOrders(c echo.Context) error {
	status := c.QueryParam("status")
	if status != "" && !models.ValidMOStatus(status) {
		return common.SendValidationError(c, "status", "is not a known manufacturing order status")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	orders, err := h.workflowService.ListManufacturingOrders(c.Request().Context(), status, limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if orders == nil {
		orders = []*models.ManufacturingOrder{}
	}
	return c.JSON(http.StatusOK, orders)
}

// ConfirmManufacturingOrder handles POST /v1/manufacturing-orders/:id/confirm
func (h *ManufacturingOrderHandlers) ConfirmManufacturingOrder(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	if err := h.workflowService.ConfirmManufacturingOrder(c.Request().Context(), id); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": models.MOStatusConfirmed})
}

// CancelManufacturingOrder handles POST /v1/manufacturing-orders/:id/cancel
func (h *ManufacturingOrderHandlers) CancelManufacturingOrder(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	if err := h.workflowService.CancelManufacturingOrder(c.Request().Context(), id); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": models.MOStatusCancelled})
}
