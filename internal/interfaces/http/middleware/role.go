package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/webshop/backend/internal/interfaces/http/dto"
)

// RequireAdmin returns a middleware that rejects non-admin requests.
// It must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Admin access required", c.GetString(RequestIDKey)))
			return
		}
		c.Next()
	}
}
