package service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/household-ledger/internal/domain/account"
	"github.com/household-ledger/internal/domain/shared"
	"github.com/household-ledger/internal/platform/messaging/producers"
)

// AccountLookup is the part of AccountService the import service needs
type AccountLookup interface {
	Get(ctx context.Context, id int64) (*account.Account, error)
}

// ImportServiceImpl implements the ImportService interface
type ImportServiceImpl struct {
	accounts AccountLookup
	producer producers.MessagePublisher
	now      func() time.Time
	logger   *slog.Logger
}

// NewImportService creates a new import service
func NewImportService(logger *slog.Logger, accounts AccountLookup, producer producers.MessagePublisher) ImportService {
	return &ImportServiceImpl{
		accounts: accounts,
		producer: producer,
		now:      time.Now,
		logger:   logger,
	}
}

// Submit checks the account and publishes the request keyed by account ID, so
// imports of one account are processed in order. A caller supplied import ID
// makes resubmission idempotent.
func (s *ImportServiceImpl) Submit(ctx context.Context, request *shared.EntryImportRequest) (uuid.UUID, error) {
	if _, err := s.accounts.Get(ctx, request.AccountID); err != nil {
		return uuid.Nil, err
	}

	if request.ImportID == uuid.Nil {
		request.ImportID = uuid.New()
	}
	if request.Timestamp.IsZero() {
		request.Timestamp = s.now().UTC()
	}

	key := strconv.FormatInt(request.AccountID, 10)
	if err := s.producer.Publish(ctx, key, request); err != nil {
		s.logger.Error("Failed to publish entry import request",
			"import_id", request.ImportID.String(),
			"account_id", request.AccountID,
			"error", err,
		)
		return uuid.Nil, err
	}

	s.logger.Info("Entry import request published",
		"import_id", request.ImportID.String(),
		"account_id", request.AccountID,
		"amount", request.Amount,
	)

	return request.ImportID, nil
}
