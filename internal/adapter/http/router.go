package http

import (
	"github.com/gin-gonic/gin"
	"github.com/luckyeats/food-order-api/internal/adapter/http/middleware"
	"github.com/luckyeats/food-order-api/internal/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(ch *CatalogHandler, crt *CartHandler, oh *OrderHandler, sh *SessionHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())

	l := logging.New("http")
	r.Use(middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1", SessionID())
	{
		v1.GET("/restaurants", ch.ListRestaurants)
		v1.GET("/restaurants/:name/menu", ch.RestaurantMenu)

		v1.GET("/cart", crt.GetCart)
		v1.POST("/cart/items", crt.AddItem)
		v1.PUT("/cart/items/:id", crt.SetQuantity)
		v1.DELETE("/cart/items/:id", crt.RemoveItem)

		v1.POST("/orders", oh.SubmitOrder)

		v1.GET("/session", sh.GetState)
		v1.POST("/session/events", sh.ApplyEvent)
	}

	return r
}
