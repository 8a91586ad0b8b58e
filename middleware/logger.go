package middleware

import (
	"time"

	"rental-admin/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger writes one structured line per request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := utils.Logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"ip":      c.ClientIP(),
			"status":  status,
			"latency": time.Since(start).String(),
		})
		switch {
		case len(c.Errors) > 0:
			entry.Error(c.Errors.String())
		case status >= 500:
			entry.Warn("request failed")
		default:
			entry.Info("request")
		}
	}
}
