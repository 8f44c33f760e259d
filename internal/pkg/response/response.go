// Package response emits the uniform error envelope. Success bodies are not
// wrapped: the capture extension and frontend consume the exact shapes the
// original bridge produced, so handlers write those directly.
package response

import "github.com/gin-gonic/gin"

// Error writes {"success":false,"error":{"code":...,"message":...}}.
func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// ErrorWithDetails adds a details field, used for validation failures where
// the caller needs the per-field reasons.
func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
