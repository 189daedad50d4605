package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopbot-backend/internal/domains/catalog/model"
	"shopbot-backend/internal/domains/catalog/service"
	"shopbot-backend/internal/shared/response"
	"shopbot-backend/pkg/logger"
)

type CatalogHandler struct {
	catalogService service.ServiceInterface
}

func NewCatalogHandler(catalogService service.ServiceInterface) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListProducts returns the full catalog, optionally filtered by ?q=.
// GET /api/v1/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	query := c.Query("q")

	var (
		products []model.Product
		err      error
	)
	if query != "" {
		products, err = h.catalogService.Search(query)
	} else {
		products, err = h.catalogService.ListAll()
	}
	if err != nil {
		logger.Error("Failed to list products", err)
		response.ErrorResponse(c, http.StatusServiceUnavailable, "CAT_001", "Catalog unavailable")
		return
	}

	response.Success(c, http.StatusOK, products)
}
