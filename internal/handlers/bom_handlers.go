package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/common"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/models"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/services"
)

// BOMHandlers handles HTTP requests for bills of materials
type BOMHandlers struct {
	catalogService services.CatalogService
}

// NewBOMHandlers creates a new BOM handlers instance
func NewBOMHandlers(catalogService services.CatalogService) *BOMHandlers {
	return &BOMHandlers{catalogService: catalogService}
}

type bomLineRequest struct {
	ComponentProductID string `json:"component_product_id" validate:"required,uuid4"`
	Quantity           int    `json:"quantity" validate:"required,gt=0"`
}

type createBOMRequest struct {
	ProductID string           `json:"product_id" validate:"required,uuid4"`
	Lines     []bomLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// CreateBOM handles POST /v1/boms
func (h *BOMHandlers) CreateBOM(c echo.Context) error {
	var req createBOMRequest
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

	input := services.CreateBOMInput{ProductID: productID}
	for i, line := range req.Lines {
		componentID, err := common.ValidateUUID(line.ComponentProductID, "component_product_id")
		if err != nil {
			return common.SendDomainError(c, err)
		}
		input.Lines = append(input.Lines, services.BOMLineInput{
			ComponentProductID: componentID,
			Quantity:           req.Lines[i].Quantity,
		})
	}

	bom, err := h.catalogService.CreateBOM(c.Request().Context(), input)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, bom)
}

// GetBOM handles GET /v1/boms/:id
func (h *BOMHandlers) GetBOM(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	bom, err := h.catalogService.GetBOM(c.Request().Context(), id)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, bom)
}

// ListBOMs handles GET /v1/boms
func (h *BOMHandlers) ListBOMs(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	boms, err := h.catalogService.ListBOMs(c.Request().Context(), limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if boms == nil {
		boms = []*models.BillOfMaterials{}
	}
	return c.JSON(http.StatusOK, boms)
}

// DeleteBOM handles DELETE /v1/boms/:id
func (h *BOMHandlers) DeleteBOM(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	if err := h.catalogService.DeleteBOM(c.Request().Context(), id); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
