package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"availability-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupErrorRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RecoveryHandler(zap.NewNop()), ErrorHandler(zap.NewNop()), CORSMiddleware())
	router.GET("/quote", func(c *gin.Context) {
		c.Error(errors.NewQuoteNotFound("q-1"))
		c.Abort()
	})
	router.GET("/plain", func(c *gin.Context) {
		c.Error(fmt.Errorf("disk on fire"))
	})
	router.GET("/written", func(c *gin.Context) {
		c.Error(fmt.Errorf("ignored"))
		c.JSON(http.StatusAccepted, gin.H{"ok": true})
	})
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return router
}

func TestErrorHandler(t *testing.T) {
	router := setupErrorRouter()

	tests := []struct {
		path     string
		status   int
		code     string
		detailOK func(string) bool
	}{
		{"/quote", http.StatusNotFound, "QuoteNotFound", func(d string) bool { return d == "Quote ID: q-1" }},
		{"/plain", http.StatusInternalServerError, "InternalError", func(d string) bool { return d == "" }},
		{"/panic", http.StatusInternalServerError, "InternalError", func(d string) bool { return d == "" }},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("GET", tc.path, nil))

			assert.Equal(t, tc.status, w.Code)
			var body errors.StandardError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Code)
			assert.True(t, tc.detailOK(body.Details), body.Details)
		})
	}
}

func TestErrorHandler_KeepsWrittenResponse(t *testing.T) {
	w := httptest.NewRecorder()
	setupErrorRouter().ServeHTTP(w, httptest.NewRequest("GET", "/written", nil))

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	w := httptest.NewRecorder()
	setupErrorRouter().ServeHTTP(w, httptest.NewRequest("OPTIONS", "/quote", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
