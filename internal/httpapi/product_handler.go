package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"worktrack/internal/product"
)

// ProductHandler serves the product catalog.
type ProductHandler struct {
	catalog ProductLister
}

// NewProductHandler creates a handler.
func NewProductHandler(catalog ProductLister) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// List handles POST /all-products.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.catalog.List(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	if products == nil {
		products = []product.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}
