package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/agritech/internal/service/session"
)

const (
	// SessionHeader carries the client session id.
	SessionHeader = "X-Session-ID"
	// SessionCookie is the fallback carrier for browsers.
	SessionCookie = "agritech_session"

	sessionKey       = "session_id"
	maxSessionIDLen  = 128
	sessionCookieAge = 24 * 60 * 60
)

// SessionMiddleware resolves the caller's session id from the header or the
// cookie and issues a new one when neither is usable.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				id = cookie
			}
		}
		if id == "" || len(id) > maxSessionIDLen {
			id = session.NewID()
		}

		c.Set(sessionKey, id)
		c.Header(SessionHeader, id)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, sessionCookieAge, "/", "", false, true)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	if id := c.GetString(sessionKey); id != "" {
		return id
	}
	return session.NewID()
}
