package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/amterp/dairy/internal/service"
)

// RoleHeader selects the role a request logs in with. It defaults to staff.
const RoleHeader = "X-Dairy-Role"

// cors adds permissive CORS headers for local front ends.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, "+RoleHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

// zapLogger logs one line per request.
func zapLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.String()))
			logger.Error("request failed", fields...)
			return
		}
		logger.Info("request completed", fields...)
	}
}

// requireAuth logs every request in with HTTP Basic credentials and the
// role from RoleHeader.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", `Basic realm="dairy"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		roleName := c.GetHeader(RoleHeader)
		if roleName == "" {
			roleName = string(service.RoleStaff)
		}
		role, err := service.ParseRole(roleName)
		if err != nil {
			Error(c, err)
			return
		}

		var session *service.Session
		err = h.locked(func() (err error) {
			session, err = h.services.Auth.Login(role, username, password)
			return err
		})
		if err != nil {
			Error(c, err)
			return
		}

		setSession(c, session)
		c.Next()
	}
}
