package repositories

import (
	"context"

	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
)

// SyncBatchReader defines read operations for sync batches.
type SyncBatchReader interface {
	// FindBatchByID retrieves a sync batch by its id.
	FindBatchByID(ctx context.Context, syncBatchID string) (*domain.SyncBatch, error)
}

// SyncBatchWriter defines write operations for sync batches.
type SyncBatchWriter interface {
	// CreateBatch persists a new RUNNING batch row.
	CreateBatch(ctx context.Context, batch domain.SyncBatch) error

	// FinalizeBatch writes the terminal status, statistics and duration. The
	// update is guarded on status=RUNNING so a batch is finalized exactly once;
	// a second finalization returns apperrors.ErrConflict.
	FinalizeBatch(ctx context.Context, batch domain.SyncBatch) error
}

// SyncBatchRepositoryFacade combines all sync-batch repository interfaces
type SyncBatchRepositoryFacade interface {
	SyncBatchReader
	SyncBatchWriter
}
