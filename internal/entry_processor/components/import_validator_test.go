package components

import (
	"context"
	"testing"

	"log/slog"

	"github.com/google/uuid"
	"github.com/household-ledger/internal/domain/shared"
	"github.com/household-ledger/internal/entry_processor/service"
	"github.com/stretchr/testify/assert"
)

func TestImportValidator_Validate(t *testing.T) {
	badCategory := int64(0)
	food := int64(4)

	tests := []struct {
		name    string
		request *shared.EntryImportRequest
		wantErr bool
	}{
		{
			name:    "valid plain entry",
			request: &shared.EntryImportRequest{ImportID: uuid.New(), AccountID: 1, Amount: -500},
		},
		{
			name: "valid split entry",
			request: &shared.EntryImportRequest{
				ImportID:   uuid.New(),
				AccountID:  1,
				SubEntries: []shared.EntryImportPart{{CategoryID: &food, Amount: -500}, {Amount: 100}},
			},
		},
		{
			name:    "zero amount is allowed",
			request: &shared.EntryImportRequest{ImportID: uuid.New(), AccountID: 1},
		},
		{
			name:    "missing import id",
			request: &shared.EntryImportRequest{AccountID: 1, Amount: 10},
			wantErr: true,
		},
		{
			name:    "missing account",
			request: &shared.EntryImportRequest{ImportID: uuid.New(), Amount: 10},
			wantErr: true,
		},
		{
			name: "invalid part category",
			request: &shared.EntryImportRequest{
				ImportID:   uuid.New(),
				AccountID:  1,
				SubEntries: []shared.EntryImportPart{{CategoryID: &badCategory}},
			},
			wantErr: true,
		},
	}

	validator := NewImportValidator(slog.Default())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Validate(context.Background(), tt.request)
			if tt.wantErr {
				assert.ErrorIs(t, err, service.ErrMalformedImport)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
