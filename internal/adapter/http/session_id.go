package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionHeader = "X-Session-Id"

// SessionID resolves the caller's session id, issuing a fresh one when the
// header is absent. The id is echoed back so clients can adopt it.
func SessionID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(sessionHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(sessionHeader, id)
		c.Set("session_id", id)
		c.Next()
	}
}

func sessionFrom(c *gin.Context) string {
	return c.GetString("session_id")
}
