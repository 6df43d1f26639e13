package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/household-ledger/internal/domain/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSessionProvider struct {
	mock.Mock
}

func (m *MockSessionProvider) Current(ctx context.Context) (*session.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func TestSessionMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		session    *session.Session
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "StoresSession",
			session:    &session.Session{ID: 1, RootCategoryID: 2, SplitCategoryID: 3},
			wantStatus: http.StatusOK,
		},
		{
			name:       "NotInitialized",
			err:        session.ErrNotInitialized,
			wantStatus: http.StatusConflict,
			wantCode:   "CONFLICT",
		},
		{
			name:       "StoreFailure",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testLogger, _ := newBufferedLogger(slog.LevelInfo)
			provider := new(MockSessionProvider)
			provider.On("Current", mock.Anything).Return(tt.session, tt.err)

			var got *session.Session
			router := gin.New()
			router.Use(CorrelationID())
			router.Use(Session(testLogger, provider))
			router.GET("/categories", func(c *gin.Context) {
				got = GetSession(c)
				c.Status(http.StatusOK)
			})

			req, _ := http.NewRequest(http.MethodGet, "/categories", nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCode == "" {
				assert.Equal(t, tt.session, got)
			} else {
				assert.Nil(t, got, "handler must not run")
				var body map[string]interface{}
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				assert.Equal(t, tt.wantCode, body["error"].(map[string]interface{})["code"])
				assert.NotEmpty(t, body["correlation_id"])
			}
			provider.AssertExpectations(t)
		})
	}
}

func TestGetSession_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetSession(c))
}
