package middleware

import (
	"net/http"
	"strings"

	"availability-service/internal/auth"
	"availability-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UsernameContextKey is the gin context key holding the authenticated username
const UsernameContextKey = "username"

// AuthMiddleware rejects requests without a valid bearer token and puts the
// caller's username into the gin context
func AuthMiddleware(jwtManager *auth.JWTManager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Missing authorization header",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			c.JSON(http.StatusUnauthorized, errors.NewUnauthorized("missing authorization header", "Header: Authorization"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			logger.Warn("Invalid authorization header format",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			c.JSON(http.StatusUnauthorized, errors.NewUnauthorized("invalid authorization header format", "Expected: Bearer <token>"))
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			if err == auth.ErrExpiredToken {
				logger.Warn("Token expired",
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)
				c.JSON(http.StatusUnauthorized, errors.NewUnauthorized("token expired", "Token has expired, please login again"))
				c.Abort()
				return
			}

			logger.Warn("Invalid token",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Error(err),
			)
			c.JSON(http.StatusUnauthorized, errors.NewUnauthorized("invalid token", "Token could not be verified"))
			c.Abort()
			return
		}

		c.Set(UsernameContextKey, claims.Username)
		c.Set("user_id", claims.Subject)

		logger.Debug("Token validated",
			zap.String("username", claims.Username),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)

		c.Next()
	}
}

