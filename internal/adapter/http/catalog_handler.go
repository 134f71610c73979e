package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luckyeats/food-order-api/internal/logging"
	"github.com/luckyeats/food-order-api/internal/usecase"
)

type CatalogHandler struct {
	catalog usecase.Catalog
}

func NewCatalogHandler(catalog usecase.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) ListRestaurants(c *gin.Context) {
	restaurants, err := h.catalog.Restaurants(c.Request.Context())
	if err != nil {
		logging.From(c).Error("list restaurants", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog_unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

func (h *CatalogHandler) RestaurantMenu(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	menu, err := h.catalog.Menu(c.Request.Context(), name)
	if err != nil {
		logging.From(c).Error("restaurant menu", "restaurant", name, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog_unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": name, "menu": menu})
}
