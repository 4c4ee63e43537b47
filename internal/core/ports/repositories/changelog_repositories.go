package repositories

import (
	"context"

	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
)

// ChangeLogReader defines read operations for audit change-log entries.
type ChangeLogReader interface {
	// FindEntriesByBatchID retrieves all change-log entries emitted by a batch.
	// Drives touched-key derivation for summary materialization.
	FindEntriesByBatchID(ctx context.Context, syncBatchID string) ([]domain.ChangeLogEntry, error)

	// FindEntriesByOrderKey retrieves the change history of one order, newest first.
	FindEntriesByOrderKey(ctx context.Context, companyID, orderKey string) ([]domain.ChangeLogEntry, error)
}

// ChangeLogWriter defines write operations for audit change-log entries.
type ChangeLogWriter interface {
	// SaveEntry persists a new change-log entry. Entries are append-only.
	SaveEntry(ctx context.Context, entry domain.ChangeLogEntry) error
}

// ChangeLogRepositoryFacade combines all change-log repository interfaces
type ChangeLogRepositoryFacade interface {
	ChangeLogReader
	ChangeLogWriter
}
