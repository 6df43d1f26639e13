package handler

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/household-ledger/internal/api_gateway/service"
	"github.com/household-ledger/internal/domain/account"
)

// AccountHandler handles HTTP requests for account operations
type AccountHandler struct {
	accountService service.AccountService
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(logger *slog.Logger, accountService service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// Create handles creation of a new account with its starting balance
func (h *AccountHandler) Create(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	acc, err := h.accountService.Create(c.Request.Context(), req.Name, req.StartBalance)
	if err != nil {
		respondServiceError(c, h.logger, "Failed to create account", err)
		return
	}

	RespondCreated(c, mapAccountToResponse(acc))
}

// GetByID retrieves an account by its ID, returning 404 if not found
func (h *AccountHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "account ID")
	if !ok {
		return
	}

	acc, err := h.accountService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.logger, "Failed to get account", err)
		return
	}

	RespondOK(c, mapAccountToResponse(acc))
}

// List returns every account
func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.accountService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, "Failed to list accounts", err)
		return
	}

	response := make([]AccountResponse, 0, len(accounts))
	for _, acc := range accounts {
		response = append(response, mapAccountToResponse(acc))
	}
	RespondOK(c, response)
}

// mapAccountToResponse maps an account entity to an account response DTO
func mapAccountToResponse(acc *account.Account) AccountResponse {
	return AccountResponse{
		ID:           acc.ID,
		Name:         acc.Name,
		StartBalance: acc.StartBalance,
		CreatedAt:    acc.CreatedAt.Format(time.RFC3339),
	}
}
