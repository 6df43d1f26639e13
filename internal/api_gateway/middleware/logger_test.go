package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/household-ledger/internal/logger"
	"github.com/stretchr/testify/assert"
)

func newBufferedLogger(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level})), &buf
}

func TestLoggerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("LogsRequestDetails", func(t *testing.T) {
		testLogger, logBuffer := newBufferedLogger(slog.LevelInfo)

		router := gin.New()
		router.Use(CorrelationID())
		router.Use(Logger(testLogger))
		router.GET("/accounts/:id", func(c *gin.Context) {
			c.String(http.StatusOK, "OK")
		})

		req, _ := http.NewRequest(http.MethodGet, "/accounts/4?page=2", nil)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set(CorrelationIDHeader, "corr-42")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		logOutput := logBuffer.String()
		assert.Contains(t, logOutput, `"level":"INFO"`)
		assert.Contains(t, logOutput, `"msg":"HTTP request"`)
		assert.Contains(t, logOutput, `"path":"/accounts/4?page=2"`)
		assert.Contains(t, logOutput, `"route":"/accounts/:id"`)
		assert.Contains(t, logOutput, `"status":200`)
		assert.Contains(t, logOutput, `"user_agent":"test-agent"`)
		assert.Contains(t, logOutput, `"correlation_id":"corr-42"`)
	})

	t.Run("ErrorsLogAtHigherLevels", func(t *testing.T) {
		testLogger, logBuffer := newBufferedLogger(slog.LevelWarn)

		router := gin.New()
		router.Use(CorrelationID())
		router.Use(Logger(testLogger))
		router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
		router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
		router.GET("/broken", func(c *gin.Context) { c.Status(http.StatusServiceUnavailable) })

		for _, path := range []string{"/ok", "/missing", "/broken"} {
			req, _ := http.NewRequest(http.MethodGet, path, nil)
			router.ServeHTTP(httptest.NewRecorder(), req)
		}

		logOutput := logBuffer.String()
		assert.NotContains(t, logOutput, `"path":"/ok"`)
		assert.Contains(t, logOutput, `"level":"WARN"`)
		assert.Contains(t, logOutput, `"level":"ERROR"`)
		assert.Contains(t, logOutput, `"status":503`)
	})

	t.Run("StoresRequestLoggerInContext", func(t *testing.T) {
		testLogger, logBuffer := newBufferedLogger(slog.LevelInfo)

		router := gin.New()
		router.Use(CorrelationID())
		router.Use(Logger(testLogger))
		router.POST("/entries", func(c *gin.Context) {
			logger.FromContext(c.Request.Context(), nil).Info("inside handler")
			c.Status(http.StatusCreated)
		})

		req, _ := http.NewRequest(http.MethodPost, "/entries", nil)
		req.Header.Set(CorrelationIDHeader, "corr-7")
		router.ServeHTTP(httptest.NewRecorder(), req)

		assert.Contains(t, logBuffer.String(), `"msg":"inside handler","correlation_id":"corr-7"`)
	})
}
