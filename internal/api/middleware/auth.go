package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "periodic-tables/backend/pkg/errors"
	"periodic-tables/backend/pkg/jwt"
	"periodic-tables/backend/pkg/redis"
	"periodic-tables/backend/pkg/response"
)

// ClaimsKey context key of the verified *jwt.Claims.
const ClaimsKey = "staff_claims"

// StaffAuth requires a staff Bearer token when enabled; when disabled every request passes.
// rdb may be nil, in which case revoked tokens are not checked.
func StaffAuth(enabled bool, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthenticated(c, "missing Authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthenticated(c, "Authorization header must be 'Bearer <token>'")
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				unauthenticated(c, "token expired")
				return
			}
			unauthenticated(c, "invalid token")
			return
		}

		if claims.Role != jwt.RoleStaff {
			unauthenticated(c, "invalid token")
			return
		}

		if rdb != nil {
			revoked, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// Redis down: accept the signature alone.
				logger.Warn("token blacklist lookup failed", zap.Error(err))
			} else if revoked {
				unauthenticated(c, "token revoked")
				return
			}
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func unauthenticated(c *gin.Context, message string) {
	response.Unauthorized(c, apperrors.CodeUnauthenticated, message)
	c.Abort()
}
