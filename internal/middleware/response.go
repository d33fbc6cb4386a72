package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// abortWithError stops the chain and writes the same error envelope the
// team endpoints use.
func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": []string{},
		},
		"timestamp": time.Now().UTC(),
	})
}
