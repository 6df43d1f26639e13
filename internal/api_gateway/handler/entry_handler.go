package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/household-ledger/internal/api_gateway/middleware"
	"github.com/household-ledger/internal/api_gateway/service"
	"github.com/household-ledger/internal/domain/entry"
	"github.com/household-ledger/internal/domain/shared"
)

// EntryHandler handles HTTP requests for entry operations
type EntryHandler struct {
	entryService  service.EntryService
	importService service.ImportService
	logger        *slog.Logger
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(logger *slog.Logger, entryService service.EntryService, importService service.ImportService) *EntryHandler {
	return &EntryHandler{
		entryService:  entryService,
		importService: importService,
		logger:        logger,
	}
}

// Create books a new entry and returns its ID
func (h *EntryHandler) Create(c *gin.Context) {
	var req EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	in, err := req.toEntry()
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	id, err := h.entryService.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, h.logger, "Failed to create entry", err)
		return
	}

	RespondCreated(c, IDResponse{ID: id})
}

// GetByID returns an entry with its sub-entries
func (h *EntryHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "entry ID")
	if !ok {
		return
	}

	e, err := h.entryService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.logger, "Failed to get entry", err)
		return
	}

	RespondOK(c, mapEntryToResponse(e, false))
}

// Update replaces the editable fields of an entry
func (h *EntryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "entry ID")
	if !ok {
		return
	}

	var req EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	in, err := req.toEntry()
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}
	in.ID = id

	if err := h.entryService.Update(c.Request.Context(), in); err != nil {
		respondServiceError(c, h.logger, "Failed to update entry", err)
		return
	}

	RespondNoContent(c)
}

// Delete removes an entry together with its sub-entries and transfer mirror
func (h *EntryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "entry ID")
	if !ok {
		return
	}

	if err := h.entryService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.logger, "Failed to delete entry", err)
		return
	}

	RespondNoContent(c)
}

// ListByAccount returns one page of an account's entries, newest first, with
// running balances. The meta total counts all entries of the account.
func (h *EntryHandler) ListByAccount(c *gin.Context) {
	accountID, ok := parseID(c, "account ID")
	if !ok {
		return
	}

	var params EntryListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid query parameters")
		return
	}

	entries, err := h.entryService.List(c.Request.Context(), accountID, params.Page, params.Filter)
	if err != nil {
		respondServiceError(c, h.logger, "Failed to list entries", err)
		return
	}

	total, err := h.entryService.Count(c.Request.Context(), accountID)
	if err != nil {
		respondServiceError(c, h.logger, "Failed to count entries", err)
		return
	}

	response := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, mapEntryToResponse(e, true))
	}

	page := 1
	if params.Page != nil {
		page = *params.Page
	}
	RespondWithPaginatedData(c, http.StatusOK, response, page, entry.PageSize, int(total))
}

// CountByAccount returns the number of entries of an account
func (h *EntryHandler) CountByAccount(c *gin.Context) {
	accountID, ok := parseID(c, "account ID")
	if !ok {
		return
	}

	total, err := h.entryService.Count(c.Request.Context(), accountID)
	if err != nil {
		respondServiceError(c, h.logger, "Failed to count entries", err)
		return
	}

	RespondOK(c, CountResponse{Count: total})
}

// Import queues an entry for asynchronous booking on the account
func (h *EntryHandler) Import(c *gin.Context) {
	accountID, ok := parseID(c, "account ID")
	if !ok {
		return
	}

	var req ImportEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	request, err := req.toImportRequest(accountID)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}
	request.CorrelationID = middleware.GetCorrelationID(c)

	importID, err := h.importService.Submit(c.Request.Context(), request)
	if err != nil {
		respondServiceError(c, h.logger, "Failed to submit entry import", err)
		return
	}

	RespondAccepted(c, gin.H{
		"import_id": importID.String(),
		"status":    "PENDING",
	})
}

func (r EntryRequest) toEntry() (*entry.Entry, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return nil, err
	}

	e := &entry.Entry{
		AccountID:   r.AccountID,
		CategoryID:  r.CategoryID,
		Date:        date,
		Amount:      r.Amount,
		Description: r.Description,
		Memo:        r.Memo,
		Status:      entry.Status(r.Status),
	}
	for _, sub := range r.SubEntries {
		e.SubEntries = append(e.SubEntries, &entry.Entry{
			CategoryID:  sub.CategoryID,
			Amount:      sub.Amount,
			Description: sub.Description,
			Memo:        sub.Memo,
		})
	}
	return e, nil
}

func (r ImportEntryRequest) toImportRequest(accountID int64) (*shared.EntryImportRequest, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return nil, err
	}

	request := &shared.EntryImportRequest{
		AccountID:   accountID,
		CategoryID:  r.CategoryID,
		Date:        date,
		Amount:      r.Amount,
		Description: r.Description,
		Memo:        r.Memo,
	}
	if r.ImportID != "" {
		if request.ImportID, err = uuid.Parse(r.ImportID); err != nil {
			return nil, fmt.Errorf("invalid import_id: %w", err)
		}
	}
	for _, sub := range r.SubEntries {
		request.SubEntries = append(request.SubEntries, shared.EntryImportPart{
			CategoryID:  sub.CategoryID,
			Amount:      sub.Amount,
			Description: sub.Description,
			Memo:        sub.Memo,
		})
	}
	return request, nil
}

// parseDate reads a DateLayout date, empty means undated
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return &d, nil
}

// mapEntryToResponse maps an entry to its response DTO. Balances are only
// meaningful in account listings.
func mapEntryToResponse(e *entry.Entry, withBalance bool) EntryResponse {
	response := EntryResponse{
		ID:           e.ID,
		AccountID:    e.AccountID,
		CategoryID:   e.CategoryID,
		CategoryName: e.CategoryName,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
		Amount:       e.Amount,
		Description:  e.Description,
		Memo:         e.Memo,
		Status:       string(e.Status),
		OtherID:      e.OtherID,
		SplitEntryID: e.SplitEntryID,
	}
	if e.Date != nil {
		response.Date = e.Date.Format(DateLayout)
	}
	if withBalance {
		balance := e.Balance
		response.Balance = &balance
	}
	for _, sub := range e.SubEntries {
		response.SubEntries = append(response.SubEntries, mapEntryToResponse(sub, false))
	}
	return response
}
