// utils/respond.go
package utils

import "github.com/gin-gonic/gin"

// RespondWithError writes the shared error envelope
func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}
