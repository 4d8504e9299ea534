package auth

import (
	"crypto/subtle"
	"net/http"
	"time"

	"availability-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	jwtManager *JWTManager
	users      map[string]string
	logger     *zap.Logger
}

// DefaultUsers are the demo accounts accepted by the login endpoint
var DefaultUsers = map[string]string{
	"planner": "planner123",
	"sales":   "sales123",
	"admin":   "admin123",
}

// NewAuthHandler creates a handler that checks logins against users.
// A nil users map falls back to DefaultUsers.
func NewAuthHandler(jwtManager *JWTManager, users map[string]string, logger *zap.Logger) *AuthHandler {
	if users == nil {
		users = DefaultUsers
	}
	return &AuthHandler{
		jwtManager: jwtManager,
		users:      users,
		logger:     logger,
	}
}

// LoginRequest represents the login request
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"planner"`
	Password string `json:"password" binding:"required" example:"planner123"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Type      string    `json:"type" example:"Bearer"`
	ExpiresIn int       `json:"expires_in" example:"600"`
	ExpiresAt time.Time `json:"expires_at" example:"2024-01-15T12:00:00Z"`
}

// Login handles POST /api/v1/auth/login
// @Summary      Login and get JWT token
// @Description  Authenticates a user and returns a JWT valid for 10 minutes. Demo users: planner/planner123, sales/sales123, admin/admin123
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Login credentials"
// @Success      200      {object}  LoginResponse
// @Failure      400      {object}  errors.StandardError  "Missing credentials"
// @Failure      401      {object}  errors.StandardError  "Invalid credentials"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid login request", zap.Error(err))
		c.Error(errors.NewValidationError("invalid request", "username or password"))
		c.Abort()
		return
	}

	if !h.validateCredentials(req.Username, req.Password) {
		h.logger.Warn("Invalid credentials",
			zap.String("username", req.Username),
		)
		c.Error(errors.NewUnauthorized("invalid credentials", "username or password incorrect"))
		c.Abort()
		return
	}

	token, expiresAt, err := h.jwtManager.GenerateToken(req.Username)
	if err != nil {
		h.logger.Error("Failed to generate token", zap.Error(err))
		c.Error(errors.NewInternalError("failed to generate token", err))
		c.Abort()
		return
	}

	h.logger.Info("User logged in successfully",
		zap.String("username", req.Username),
		zap.Time("expires_at", expiresAt),
	)

	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		Type:      "Bearer",
		ExpiresIn: int(h.jwtManager.ttl.Seconds()),
		ExpiresAt: expiresAt,
	})
}

func (h *AuthHandler) validateCredentials(username, password string) bool {
	expected, exists := h.users[username]
	if !exists {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(expected)) == 1
}
