package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/household-ledger/internal/domain/shared"
	"github.com/household-ledger/internal/entry_processor/service"
	"github.com/household-ledger/internal/platform/messaging/producers"
)

// ImportEventHandler handles incoming entry import messages from Kafka
type ImportEventHandler struct {
	processingService service.ProcessingService
	producer          producers.DeadLetterPublisher
	logger            *slog.Logger
}

// NewImportEventHandler creates a new handler. A nil producer disables the
// dead letter topic, unprocessable messages are then retried.
func NewImportEventHandler(
	logger *slog.Logger,
	processingService service.ProcessingService,
	producer producers.DeadLetterPublisher,
) *ImportEventHandler {
	return &ImportEventHandler{
		processingService: processingService,
		producer:          producer,
		logger:            logger,
	}
}

// HandleMessage processes Kafka messages
func (h *ImportEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var request shared.EntryImportRequest
	if err := json.Unmarshal(value, &request); err != nil {
		h.logger.Error("Failed to unmarshal entry import request from Kafka message",
			"error", err,
			"message_key", string(key),
		)
		reason := fmt.Sprintf("%s: %s", shared.ImportFailureMalformed, err.Error())
		if h.deadLetter(ctx, h.logger, key, value, reason) {
			return nil
		}
		return fmt.Errorf("failed to unmarshal message value: %w", err)
	}

	logger := h.logger
	if request.CorrelationID != "" {
		logger = h.logger.With("correlation_id", request.CorrelationID)
	}

	logger.Info("Received entry import request",
		"import_id", request.ImportID.String(),
		"account_id", request.AccountID,
		"amount", request.Amount,
		"sub_entries", len(request.SubEntries),
	)

	err := h.processingService.ProcessImport(ctx, &request)
	if err == nil {
		logger.Info("Successfully processed entry import", "import_id", request.ImportID.String())
		return nil
	}

	if reason, ok := service.RejectionReason(err); ok {
		if h.deadLetter(ctx, logger, key, value, fmt.Sprintf("%s: %s", reason, err.Error())) {
			return nil
		}
	}

	logger.Error("Failed to process entry import",
		"import_id", request.ImportID.String(),
		"error", err,
	)
	return fmt.Errorf("processing import %s failed: %w", request.ImportID.String(), err)
}

// deadLetter reports whether the message was parked and may be committed
func (h *ImportEventHandler) deadLetter(ctx context.Context, logger *slog.Logger, key, value []byte, reason string) bool {
	if h.producer == nil {
		return false
	}
	if err := h.producer.PublishToDLQ(ctx, string(key), value, reason); err != nil {
		logger.Error("Failed to publish message to DLQ",
			"dlq_error", err,
			"message_key", string(key),
		)
		return false
	}
	logger.Info("Published unprocessable message to DLQ", "message_key", string(key), "reason", reason)
	return true
}
