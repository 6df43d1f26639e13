package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/household-ledger/internal/api_gateway/service"
)

// OptionsHandler handles ledger setup requests
type OptionsHandler struct {
	sessionService service.SessionService
	logger         *slog.Logger
}

// NewOptionsHandler creates a new options handler
func NewOptionsHandler(logger *slog.Logger, sessionService service.SessionService) *OptionsHandler {
	return &OptionsHandler{
		sessionService: sessionService,
		logger:         logger,
	}
}

// Init creates the root and split categories. Repeated calls return the
// existing session.
func (h *OptionsHandler) Init(c *gin.Context) {
	sess, created, err := h.sessionService.Init(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, "Failed to initialize ledger", err)
		return
	}

	response := SessionResponse{
		RootCategoryID:  sess.RootCategoryID,
		SplitCategoryID: sess.SplitCategoryID,
		Created:         created,
	}
	if created {
		RespondCreated(c, response)
		return
	}
	RespondOK(c, response)
}
