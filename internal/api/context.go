package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amterp/dairy/internal/service"
)

const sessionKey = "dairy.session"

// setSession stores the authenticated session on the request.
func setSession(c *gin.Context, session *service.Session) {
	c.Set(sessionKey, session)
}

// sessionFrom returns the session set by the auth middleware, or nil on
// unauthenticated routes.
func sessionFrom(c *gin.Context) *service.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	session, _ := v.(*service.Session)
	return session
}

// authorize checks action against the request's role, writing a 403 and
// returning false when it is not allowed.
func authorize(c *gin.Context, action service.Action) bool {
	session := sessionFrom(c)
	if session == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return false
	}
	if err := session.Role.Authorize(action); err != nil {
		Error(c, err)
		return false
	}
	return true
}
