package handler

import (
	"github.com/gin-gonic/gin"

	"periodic-tables/backend/internal/api/middleware"
	"periodic-tables/backend/pkg/jwt"
)

// staffClaims returns the claims StaffAuth stored on the context, nil when the request carried
// no token.
func staffClaims(c *gin.Context) *jwt.Claims {
	v, exists := c.Get(middleware.ClaimsKey)
	if !exists {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}
