package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSONSuccess and JSONError shape the console's own JSON endpoints the same
// way the backend shapes its errors, so one message extractor reads both.
func JSONSuccess(c *gin.Context, code int, data any) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{
		"success": false,
		"message": message,
		"error":   http.StatusText(code),
	})
}
