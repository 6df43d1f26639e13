package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/household-ledger/internal/domain/session"
	"github.com/household-ledger/internal/logger"
)

// SessionKey is the key used to store the ledger session in the context
const SessionKey = "ledger_session"

// SessionProvider loads the current ledger session
type SessionProvider interface {
	Current(ctx context.Context) (*session.Session, error)
}

// Session middleware resolves the ledger session once per request. Requests
// are answered with 409 until the ledger has been initialized.
func Session(base *slog.Logger, provider SessionProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := provider.Current(c.Request.Context())
		if errors.Is(err, session.ErrNotInitialized) {
			abortWithError(c, http.StatusConflict, "CONFLICT", "Ledger is not initialized, call PUT /api/v1/options/init")
			return
		}
		if err != nil {
			logger.FromContext(c.Request.Context(), base).Error("Failed to load ledger session", "error", err)
			abortWithError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An internal server error occurred")
			return
		}

		c.Set(SessionKey, sess)
		c.Next()
	}
}

// GetSession retrieves the session stored by the Session middleware
func GetSession(c *gin.Context) *session.Session {
	if v, exists := c.Get(SessionKey); exists {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return nil
}
