package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/boumia-pos/internal/application/service"
	"github.com/sangkips/boumia-pos/internal/presentation/http/dto/response"
)

// CatalogHandler serves the product and customer search boxes
type CatalogHandler struct {
	searchService *service.SearchService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(searchService *service.SearchService) *CatalogHandler {
	return &CatalogHandler{searchService: searchService}
}

// SearchProducts handles GET /catalog/products?q=
func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	result, err := h.searchService.SearchProducts(c.Request.Context(), GetSessionID(c), c.Query("q"))
	if err != nil {
		h.searchError(c, err)
		return
	}
	response.OK(c, "Products retrieved successfully", result)
}

// SearchCustomers handles GET /catalog/customers?q=
func (h *CatalogHandler) SearchCustomers(c *gin.Context) {
	result, err := h.searchService.SearchCustomers(c.Request.Context(), GetSessionID(c), c.Query("q"))
	if err != nil {
		h.searchError(c, err)
		return
	}
	response.OK(c, "Customers retrieved successfully", result)
}

// searchError answers a superseded or abandoned query with an empty 204 so
// the terminal keeps showing the newer result.
func (h *CatalogHandler) searchError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrSearchSuperseded) || errors.Is(err, context.Canceled) {
		response.NoContent(c)
		return
	}
	response.Error(c, err)
}
