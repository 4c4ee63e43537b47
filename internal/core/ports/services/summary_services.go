package services

import (
	"context"

	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
)

// SummarySvc materializes dimensional aggregates.
type SummarySvc interface {
	// MaterializeTouched recomputes summary records for every dimensional key
	// touched by the batch, derived from the batch's change-log entries rather
	// than a full table scan. Returns one SummaryChange per key whose
	// aggregate actually changed.
	MaterializeTouched(ctx context.Context, batch domain.SyncBatch) ([]domain.SummaryChange, error)
}
