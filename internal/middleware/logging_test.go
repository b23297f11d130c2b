package middleware_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SscSPs/banking_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestStructuredLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	var fromGin, fromCtx *slog.Logger
	var requestID string
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger))
	r.GET("/thing", func(c *gin.Context) {
		fromGin = middleware.GetLoggerFromContext(c)
		fromCtx = middleware.GetLoggerFromCtx(c.Request.Context())
		requestID = middleware.GetRequestID(c)
		middleware.AbortWithProblem(c, http.StatusNotFound, "no thing")
	})

	t.Run("generates a request id", func(t *testing.T) {
		buf.Reset()
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/thing", nil))

		assert.NotEmpty(t, requestID)
		assert.Equal(t, requestID, w.Header().Get(middleware.RequestIDHeader))
		assert.Same(t, fromGin, fromCtx)
		assert.Contains(t, w.Body.String(), `"requestId":"`+requestID+`"`)
		assert.Contains(t, w.Body.String(), `"instance":"GET /thing"`)
		assert.Contains(t, buf.String(), `"msg":"Request completed"`)
		assert.Contains(t, buf.String(), `"status":404`)
	})

	t.Run("keeps a caller supplied id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/thing", nil)
		req.Header.Set(middleware.RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("replaces an oversized id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/thing", nil)
		req.Header.Set(middleware.RequestIDHeader, strings.Repeat("x", 65))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)
	})
}

func TestGetLoggerFromCtx_FallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), middleware.GetLoggerFromCtx(context.Background()))
}
