package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"availability-service/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret-key-min-32-chars-for-testing"

func setupAuthMiddlewareTestRouter(jwtManager *auth.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	protected := router.Group("/api/v1")
	protected.Use(AuthMiddleware(jwtManager, zap.NewNop()))
	{
		protected.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"username": c.GetString(UsernameContextKey),
				"user_id":  c.GetString("user_id"),
			})
		})
	}

	return router
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	jwtManager := auth.NewJWTManager(testSecret, zap.NewNop())
	router := setupAuthMiddlewareTestRouter(jwtManager)

	token, _, err := jwtManager.GenerateToken("planner")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/v1/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "planner", body["username"])
	assert.Equal(t, "planner", body["user_id"])
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	router := setupAuthMiddlewareTestRouter(auth.NewJWTManager(testSecret, zap.NewNop()))

	req := httptest.NewRequest("GET", "/api/v1/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"Unauthorized"`)
}

func TestAuthMiddleware_InvalidTokenFormat(t *testing.T) {
	router := setupAuthMiddlewareTestRouter(auth.NewJWTManager(testSecret, zap.NewNop()))

	testCases := []struct {
		name   string
		header string
	}{
		{"no Bearer prefix", "invalid-token"},
		{"wrong prefix", "Token invalid-token"},
		{"empty token", "Bearer "},
		{"multiple spaces", "Bearer  token"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/test", nil)
			req.Header.Set("Authorization", tc.header)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := setupAuthMiddlewareTestRouter(auth.NewJWTManager(testSecret, zap.NewNop()))

	testCases := []struct {
		name  string
		token string
	}{
		{"invalid token", "invalid.token.here"},
		{"wrong signature", "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJ1c2VybmFtZSI6ImFkbWluIn0.wrong"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/test", nil)
			req.Header.Set("Authorization", "Bearer "+tc.token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthMiddleware_TokenFromOtherSecret(t *testing.T) {
	router := setupAuthMiddlewareTestRouter(auth.NewJWTManager(testSecret, zap.NewNop()))

	token, _, err := auth.NewJWTManager("another-secret-key-min-32-chars-long", zap.NewNop()).GenerateToken("planner")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/v1/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
