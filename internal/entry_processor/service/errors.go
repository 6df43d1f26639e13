package service

import (
	"errors"
	"fmt"

	"github.com/household-ledger/internal/domain/shared"
)

// ErrMalformedImport indicates an import request missing required fields
var ErrMalformedImport = errors.New("malformed import request")

// ImportRejectedError marks an import that retrying cannot fix. The consumer
// parks such messages on the dead letter topic and commits them.
type ImportRejectedError struct {
	Reason shared.ImportFailureReason
	Err    error
}

func (e *ImportRejectedError) Error() string {
	return fmt.Sprintf("import rejected (%s): %v", e.Reason, e.Err)
}

func (e *ImportRejectedError) Unwrap() error {
	return e.Err
}

// RejectionReason returns the failure reason when err is an ImportRejectedError
func RejectionReason(err error) (shared.ImportFailureReason, bool) {
	var rejected *ImportRejectedError
	if errors.As(err, &rejected) {
		return rejected.Reason, true
	}
	return "", false
}
