package services

import (
	"context"
	"time"

	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	"github.com/byildiz78/kd-cdc-sub000/internal/dto"
)

// SyncSvc owns one end-to-end sync batch:
// fetch -> group -> version -> summarize -> delta -> batch bookkeeping.
type SyncSvc interface {
	// RunSync executes the pipeline for a company over a date range. The batch
	// row is finalized exactly once, COMPLETED or FAILED. Already-committed
	// per-order writes are not rolled back on failure; re-running the same
	// range is idempotent because unchanged hashes short-circuit.
	RunSync(ctx context.Context, companyID string, startDate, endDate time.Time) (*dto.SyncRunResult, error)
}

// POSFetcher is the narrow collaborator interface to the POS system: given a
// company and date range, return raw transaction rows.
type POSFetcher interface {
	FetchTransactions(ctx context.Context, company domain.Company, startDate, endDate time.Time) ([]domain.TransactionLine, error)
}
