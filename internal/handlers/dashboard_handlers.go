package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/analytics"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/common"
)

// DashboardHandlers handles HTTP requests for the analytics dashboard
type DashboardHandlers struct {
	analyticsService *analytics.Service
}

// NewDashboardHandlers creates a new dashboard handlers instance
func NewDashboardHandlers(analyticsService *analytics.Service) *DashboardHandlers {
	return &DashboardHandlers{analyticsService: analyticsService}
}

// GetDashboard handles GET /v1/dashboard
func (h *DashboardHandlers) GetDashboard(c echo.Context) error {
	dashboard, err := h.analyticsService.GetDashboard(c.Request().Context())
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dashboard)
}

// RefreshDashboard handles POST /v1/dashboard/refresh
func (h *DashboardHandlers) RefreshDashboard(c echo.Context) error {
	dashboard, err := h.analyticsService.Refresh(c.Request().Context())
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dashboard)
}
