// internal/interfaces/http/handlers/session.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookieName = "session_id"

// getOrCreateSessionID reads the guest session cookie, minting a new one when
// absent. The cart and coupon state in Redis are keyed by this ID.
func getOrCreateSessionID(c *gin.Context, ttl time.Duration) string {
	if sessionID, err := c.Cookie(sessionCookieName); err == nil && sessionID != "" {
		return sessionID
	}

	sessionID := uuid.New().String()
	c.SetCookie(sessionCookieName, sessionID, int(ttl.Seconds()), "/", "", false, true)
	return sessionID
}
