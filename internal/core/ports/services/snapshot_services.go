package services

import (
	"context"
	"time"

	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	"github.com/byildiz78/kd-cdc-sub000/internal/dto"
)

// SnapshotWriterSvc drives the watermark and delta side of the protocol from
// within a sync batch.
type SnapshotWriterSvc interface {
	// EnsureBootstrapSnapshot creates the company's first PENDING snapshot
	// (watermark = end of the batch window) when none exists. Returns true if
	// a snapshot was created; no deltas are possible in that case.
	EnsureBootstrapSnapshot(ctx context.Context, batch domain.SyncBatch) (bool, error)

	// ClassifyChanges classifies every changed summary key against the current
	// snapshot's watermark: changes at or before it are absorbed silently,
	// changes after it become POST_SNAPSHOT delta records with one affected
	// order per contributing order. Returns the number of deltas created.
	ClassifyChanges(ctx context.Context, batch domain.SyncBatch, changes []domain.SummaryChange) (int, error)
}

// SnapshotReaderSvc exposes the ERP-facing read surfaces.
type SnapshotReaderSvc interface {
	// GetCurrentSnapshot retrieves the company's governing snapshot.
	GetCurrentSnapshot(ctx context.Context, companyID string) (*domain.Snapshot, error)

	// ListSummaries retrieves summary records for a sheet-date range.
	ListSummaries(ctx context.Context, companyID string, startDate, endDate time.Time) ([]domain.SummaryRecord, error)

	// ListDeltas retrieves POST_SNAPSHOT deltas with affected orders for a
	// sheet-date range, optionally restricted to unprocessed ones.
	ListDeltas(ctx context.Context, companyID string, startDate, endDate time.Time, onlyUnprocessed bool) ([]domain.DeltaWithOrders, error)
}

// SnapshotConfirmSvc implements the ERP confirm/retry protocol.
type SnapshotConfirmSvc interface {
	// ConfirmPull processes the ERP's acknowledgement for a snapshot pull.
	// Guard failures map to apperrors: ErrNotFound (unknown snapshot),
	// ErrForbidden (foreign tenant), ErrConflict (already confirmed).
	ConfirmPull(ctx context.Context, companyID string, req dto.ConfirmPullRequest) (*dto.ConfirmPullResponse, error)
}

// SnapshotSvcFacade combines all snapshot-related service interfaces
type SnapshotSvcFacade interface {
	SnapshotWriterSvc
	SnapshotReaderSvc
	SnapshotConfirmSvc
}
