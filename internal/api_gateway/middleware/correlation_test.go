package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCorrelationIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	providedID := uuid.New().String()
	tests := []struct {
		name       string
		header     string
		wantHeader func(t *testing.T, got string)
	}{
		{
			name: "GeneratesCorrelationIDIfNotProvided",
			wantHeader: func(t *testing.T, got string) {
				_, err := uuid.Parse(got)
				assert.NoError(t, err, "generated correlation ID should be a valid UUID")
			},
		},
		{
			name:   "UsesCorrelationIDIfProvided",
			header: providedID,
			wantHeader: func(t *testing.T, got string) {
				assert.Equal(t, providedID, got)
			},
		},
		{
			name:   "ReplacesOversizedCorrelationID",
			header: strings.Repeat("x", maxCorrelationIDLength+1),
			wantHeader: func(t *testing.T, got string) {
				assert.Len(t, got, 36)
			},
		},
		{
			name:   "ReplacesCorrelationIDWithWhitespace",
			header: "bad id\nX-Injected: 1",
			wantHeader: func(t *testing.T, got string) {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CorrelationID())
			var capturedContextID string
			router.GET("/test", func(c *gin.Context) {
				capturedContextID = GetCorrelationID(c)
				c.Status(http.StatusOK)
			})

			req, _ := http.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set(CorrelationIDHeader, tt.header)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			respHeaderID := rr.Header().Get(CorrelationIDHeader)
			tt.wantHeader(t, respHeaderID)
			assert.Equal(t, respHeaderID, capturedContextID)
		})
	}
}

func TestGetCorrelationID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("ReturnsIDFromContextIfExists", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(CorrelationIDKey, "abc")
		assert.Equal(t, "abc", GetCorrelationID(c))
	})

	t.Run("IgnoresNonStringValues", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(CorrelationIDKey, 12345)
		assert.Empty(t, GetCorrelationID(c))
	})
}
