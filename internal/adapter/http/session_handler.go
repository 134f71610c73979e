package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luckyeats/food-order-api/internal/cart"
	"github.com/luckyeats/food-order-api/internal/session"
)

type SessionHandler struct {
	sessions *session.Manager
	carts    *cart.Manager
}

func NewSessionHandler(sessions *session.Manager, carts *cart.Manager) *SessionHandler {
	return &SessionHandler{sessions: sessions, carts: carts}
}

func (h *SessionHandler) GetState(c *gin.Context) {
	state := h.sessions.Get(c.Request.Context(), sessionFrom(c))
	c.JSON(http.StatusOK, state)
}

// ApplyEvent drives the view state machine. Checkout additionally requires a
// non-empty cart; the orchestrator itself assumes that was enforced here.
func (h *SessionHandler) ApplyEvent(c *gin.Context) {
	var ev session.Event
	if err := c.ShouldBindJSON(&ev); err != nil || ev.Kind == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	sessionID := sessionFrom(c)
	if ev.Kind == session.EventBeginCheckout {
		store := h.carts.ForSession(c.Request.Context(), sessionID)
		if len(store.Items()) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart_empty"})
			return
		}
	}

	state, err := h.sessions.Apply(c.Request.Context(), sessionID, ev)
	if err != nil {
		if errors.Is(err, session.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		return
	}
	c.JSON(http.StatusOK, state)
}
