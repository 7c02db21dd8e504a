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

// WorkOrderHandlers handles HTTP requests for work orders
type WorkOrderHandlers struct {
	workflowService services.WorkflowService
}

// NewWorkOrderHandlers creates a new work order handlers instance
func NewWorkOrderHandlers(workflowService services.WorkflowService) *WorkOrderHandlers {
	return &WorkOrderHandlers{workflowService: workflowService}
}

// ListWorkOrders handles GET /v1/work-orders. Operators see their own work
// orders; admins see everything, optionally filtered by operator_id.
func (h *WorkOrderHandlers) ListWorkOrders(c echo.Context) error {
	ctx := c.Request().Context()

	role, ok := common.GetRoleFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing role")
	}

	var operatorID *uuid.UUID
	if role == models.RoleOperator {
		userID, ok := common.GetUserIDFromContext(ctx)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Missing user")
		}
		operatorID = &userID
	} else if filter := c.QueryParam("operator_id"); filter != "" {
		id, err := common.ValidateUUID(filter, "operator_id")
		if err != nil {
			return common.SendDomainError(c, err)
		}
		operatorID = &id
	}

	status := c.QueryParam("status")
	if status != "" && !models.ValidWOStatus(status) {
		return common.SendValidationError(c, "status", "is not a known work order status")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	details, err := h.workflowService.ListWorkOrders(ctx, operatorID, status, limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if details == nil {
		details = []*models.WorkOrderDetail{}
	}
	return c.JSON(http.StatusOK, details)
}

// StartWorkOrder handles PATCH /v1/work-orders/:id/start
func (h *WorkOrderHandlers) StartWorkOrder(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}
	operatorID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing user")
	}

	wo, err := h.workflowService.StartWorkOrder(ctx, id, operatorID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, wo)
}

// CompleteWorkOrder handles PATCH /v1/work-orders/:id/complete
func (h *WorkOrderHandlers) CompleteWorkOrder(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}
	operatorID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing user")
	}

	wo, err := h.workflowService.CompleteWorkOrder(ctx, id, operatorID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, wo)
}

// CancelWorkOrder handles POST /v1/work-orders/:id/cancel
func (h *WorkOrderHandlers) CancelWorkOrder(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	if err := h.workflowService.CancelWorkOrder(c.Request().Context(), id); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": models.WOStatusCancelled})
}
