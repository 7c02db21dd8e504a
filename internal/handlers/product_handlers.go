package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/common"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/models"
	"github.com/borkeradarsh/odoo-hackathon-management-sub000/internal/services"
)

// ProductHandlers handles HTTP requests for products
type ProductHandlers struct {
	catalogService services.CatalogService
}

// NewProductHandlers creates a new product handlers instance
func NewProductHandlers(catalogService services.CatalogService) *ProductHandlers {
	return &ProductHandlers{catalogService: catalogService}
}

type productRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	Type          string `json:"type" validate:"required,oneof=raw_material finished_good"`
	MinStockLevel int    `json:"min_stock_level" validate:"gte=0"`
	UnitCost      string `json:"unit_cost" validate:"required"`
}

func (r *productRequest) toInput() (services.ProductInput, error) {
	unitCost, err := decimal.NewFromString(r.UnitCost)
	if err != nil {
		return services.ProductInput{}, common.ValidationError("unit_cost", "must be a decimal number")
	}
	return services.ProductInput{
		Name:          r.Name,
		Type:          r.Type,
		MinStockLevel: r.MinStockLevel,
		UnitCost:      unitCost,
	}, nil
}

// CreateProduct handles POST /v1/products
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input, err := req.toInput()
	if err != nil {
		return common.SendDomainError(c, err)
	}

	product, err := h.catalogService.CreateProduct(c.Request().Context(), input)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, product)
}

// GetProduct handles GET /v1/products/:id
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	product, err := h.catalogService.GetProduct(c.Request().Context(), id)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// UpdateProduct handles PUT /v1/products/:id
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input, err := req.toInput()
	if err != nil {
		return common.SendDomainError(c, err)
	}

	product, err := h.catalogService.UpdateProduct(c.Request().Context(), id, input)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /v1/products/:id
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendDomainError(c, err)
	}

	if err := h.catalogService.DeleteProduct(c.Request().Context(), id); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListProducts handles GET /v1/products
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	products, err := h.catalogService.ListProducts(c.Request().Context(), limit, offset)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	if products == nil {
		products = []*models.Product{}
	}
	return c.JSON(http.StatusOK, products)
}
