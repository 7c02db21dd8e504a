package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/common"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/services"
)

// ReportHandlers handles HTTP requests for report exports
type ReportHandlers struct {
	reportService services.ReportService
}

// NewReportHandlers creates a new report handlers instance
func NewReportHandlers(reportService services.ReportService) *ReportHandlers {
	return &ReportHandlers{reportService: reportService}
}

// ExportStockLedger handles GET /v1/reports/stock-ledger/export
func (h *ReportHandlers) ExportStockLedger(c echo.Context) error {
	var productID *uuid.UUID
	if filter := c.QueryParam("product_id"); filter != "" {
		id, err := common.ValidateUUID(filter, "product_id")
		if err != nil {
			return common.SendDomainError(c, err)
		}
		productID = &id
	}

	export, err := h.reportService.ExportStockLedger(c.Request().Context(), productID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, export)
}
