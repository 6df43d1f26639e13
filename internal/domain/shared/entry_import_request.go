package shared

import (
	"time"

	"github.com/google/uuid"
)

// EntryImportRequest defines a Kafka message asking for one entry to be
// created asynchronously
type EntryImportRequest struct {
	ImportID      uuid.UUID         `json:"import_id"`
	AccountID     int64             `json:"account_id"`
	CategoryID    *int64            `json:"category_id,omitempty"`
	Date          *time.Time        `json:"date,omitempty"`
	Amount        int64             `json:"amount"` // Stored in cents/minor units
	Description   string            `json:"description,omitempty"`
	Memo          string            `json:"memo,omitempty"`
	SubEntries    []EntryImportPart `json:"sub_entries,omitempty"`
	CorrelationID string            `json:"correlation_id,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
}

// EntryImportPart is one categorized part of an imported split entry
type EntryImportPart struct {
	CategoryID  *int64 `json:"category_id,omitempty"`
	Amount      int64  `json:"amount"`
	Description string `json:"description,omitempty"`
	Memo        string `json:"memo,omitempty"`
}

// ImportFailureReason categorizes imports that can never succeed
type ImportFailureReason string

const (
	ImportFailureAccountNotFound  ImportFailureReason = "ACCOUNT_NOT_FOUND"
	ImportFailureCategoryNotFound ImportFailureReason = "CATEGORY_NOT_FOUND"
	ImportFailureMalformed        ImportFailureReason = "MALFORMED_MESSAGE"
)
