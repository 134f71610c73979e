package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luckyeats/food-order-api/internal/cart"
	domain "github.com/luckyeats/food-order-api/internal/entity"
)

type CartHandler struct {
	carts       *cart.Manager
	shippingFee int64
}

func NewCartHandler(carts *cart.Manager, shippingFee int64) *CartHandler {
	return &CartHandler{carts: carts, shippingFee: shippingFee}
}

type addItemReq struct {
	ID             string `json:"id" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Price          int64  `json:"price" binding:"min=0"`
	RestaurantName string `json:"restaurantName"`
}

type setQuantityReq struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *CartHandler) GetCart(c *gin.Context) {
	store := h.carts.ForSession(c.Request.Context(), sessionFrom(c))
	h.respond(c, store, "")
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	store := h.carts.ForSession(c.Request.Context(), sessionFrom(c))
	entry := store.Add(c.Request.Context(), domain.MenuItem{
		ID:             req.ID,
		Name:           req.Name,
		Price:          req.Price,
		RestaurantName: req.RestaurantName,
	})
	h.respond(c, store, fmt.Sprintf("%s 已加入購物車！", entry.Name))
}

func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req setQuantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	store := h.carts.ForSession(c.Request.Context(), sessionFrom(c))
	store.SetQuantity(c.Request.Context(), c.Param("id"), *req.Quantity)
	h.respond(c, store, "")
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	store := h.carts.ForSession(c.Request.Context(), sessionFrom(c))
	removed, ok := store.Remove(c.Request.Context(), c.Param("id"))
	msg := ""
	if ok {
		msg = fmt.Sprintf("%s 已從購物車移除。", removed.Name)
	}
	h.respond(c, store, msg)
}

func (h *CartHandler) respond(c *gin.Context, store *cart.Store, message string) {
	items := store.Items()
	subtotal := domain.Subtotal(items)
	resp := gin.H{
		"items":       items,
		"itemCount":   store.Count(),
		"subtotal":    subtotal,
		"shippingFee": h.shippingFee,
		"total":       subtotal + h.shippingFee,
	}
	if message != "" {
		resp["message"] = message
	}
	c.JSON(http.StatusOK, resp)
}
