package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/common"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/models"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/services"
)

// OperatorHandlers handles HTTP requests for operator profiles
type OperatorHandlers struct {
	catalogService services.CatalogService
}

// NewOperatorHandlers creates a new operator handlers instance
func NewOperatorHandlers(catalogService services.CatalogService) *OperatorHandlers {
	return &OperatorHandlers{catalogService: catalogService}
}

// ListOperators handles GET /v1/operators
func (h *OperatorHandlers) ListOperators(c echo.Context) error {
	operators, err := h.catalogService.ListOperators(c.Request().Context())
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if operators == nil {
		operators = []*models.UserProfile{}
	}
	return c.JSON(http.StatusOK, operators)
}
