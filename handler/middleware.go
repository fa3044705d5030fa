package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/greengrowth-cpas/tax-agent/session"
)

const (
	// SessionCookie carries the session id between interaction turns.
	SessionCookie = "tax_agent_session"

	sessionContextKey = "session"

	cookieMaxAge = 24 * 60 * 60
)

// SessionMiddleware resolves the visitor's session from the cookie, creating
// one (and setting the cookie) when absent or expired. Every handler after it
// can rely on CurrentSession.
func SessionMiddleware(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sess *session.Session

		if id, err := c.Cookie(SessionCookie); err == nil {
			sess, _ = store.Get(id)
		}
		if sess == nil {
			sess = store.Create()
			c.SetCookie(SessionCookie, sess.ID, cookieMaxAge, "/", "", false, true)
		}

		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session attached by SessionMiddleware.
func CurrentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionContextKey).(*session.Session)
}
