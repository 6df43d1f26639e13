package handler

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/household-ledger/internal/domain/account"
	"github.com/household-ledger/internal/domain/category"
	"github.com/household-ledger/internal/domain/entry"
	"github.com/household-ledger/internal/domain/session"
	"github.com/household-ledger/internal/logger"
)

// respondServiceError maps ledger errors to HTTP responses. Unknown errors
// are logged and answered with 500.
func respondServiceError(c *gin.Context, base *slog.Logger, msg string, err error) {
	switch {
	case errors.Is(err, account.ErrAccountNotFound{}):
		RespondNotFound(c, "Account not found")
	case errors.Is(err, category.ErrCategoryNotFound{}):
		RespondNotFound(c, "Category not found")
	case errors.Is(err, entry.ErrEntryNotFound{}):
		RespondNotFound(c, "Entry not found")
	case errors.Is(err, category.ErrInvalidTree),
		errors.Is(err, category.ErrReservedCategory),
		errors.Is(err, category.ErrEmptyName),
		errors.Is(err, account.ErrEmptyName):
		RespondBadRequest(c, err.Error())
	case errors.Is(err, session.ErrNotInitialized):
		RespondConflict(c, err.Error())
	default:
		logger.FromContext(c.Request.Context(), base).Error(msg, "error", err)
		RespondInternalError(c)
	}
}

// parseID reads the positive :id path parameter, answering 400 otherwise
func parseID(c *gin.Context, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondBadRequest(c, "Invalid "+label)
		return 0, false
	}
	return id, true
}
