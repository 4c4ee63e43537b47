package services

import (
	"context"

	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
)

// VersioningSvc is the order change-detection and versioning engine.
type VersioningSvc interface {
	// ProcessOrder decides NEW / UPDATED / UNCHANGED for one order's current
	// line set, writes an immutable new version when the content changed, and
	// emits one audit change-log entry. The mark-not-latest and insert-new
	// steps are applied together or not at all; any persistence error
	// propagates to the caller and aborts the batch.
	ProcessOrder(ctx context.Context, batch domain.SyncBatch, orderKey string, lines []domain.TransactionLine) (domain.VersionOutcome, error)
}
