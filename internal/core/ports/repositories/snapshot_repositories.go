package repositories

import (
	"context"
	"time"

	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
)

// SnapshotReader defines read operations for snapshots.
type SnapshotReader interface {
	// FindSnapshotByID retrieves a snapshot by its id.
	FindSnapshotByID(ctx context.Context, snapshotID string) (*domain.Snapshot, error)

	// FindCurrentSnapshot retrieves the company's most recently created
	// snapshot, the governing watermark. Returns apperrors.ErrNotFound when the
	// company has no snapshot yet (bootstrap case).
	FindCurrentSnapshot(ctx context.Context, companyID string) (*domain.Snapshot, error)
}

// SnapshotWriter defines write operations for snapshots.
type SnapshotWriter interface {
	// SaveSnapshot persists a new snapshot.
	SaveSnapshot(ctx context.Context, snapshot domain.Snapshot) error

	// UpdateSnapshot updates the mutable protocol fields of a snapshot
	// (status, counts, erp timestamps, error message).
	UpdateSnapshot(ctx context.Context, snapshot domain.Snapshot) error
}

// DeltaReader defines read operations for delta records.
type DeltaReader interface {
	// ListDeltas retrieves POST_SNAPSHOT deltas in the sheet-date window,
	// optionally restricted to unprocessed ones, with their affected orders.
	ListDeltas(ctx context.Context, companyID string, startDate, endDate time.Time, onlyUnprocessed bool) ([]domain.DeltaWithOrders, error)

	// CountDeltasBySnapshot counts deltas referencing the snapshot. Used to
	// refresh a snapshot's deltaCount from live truth.
	CountDeltasBySnapshot(ctx context.Context, snapshotID string) (int64, error)
}

// DeltaWriter defines write operations for delta records.
type DeltaWriter interface {
	// SaveDeltaWithAffectedOrders persists a delta and its affected-order rows
	// within one database transaction.
	SaveDeltaWithAffectedOrders(ctx context.Context, delta domain.DeltaRecord, orders []domain.AffectedOrder) error

	// MarkDeltasProcessed flags all unprocessed deltas of a snapshot as
	// processed. Returns the number of rows updated.
	MarkDeltasProcessed(ctx context.Context, snapshotID string, processedAt time.Time) (int64, error)
}

// SnapshotRepositoryFacade combines all snapshot and delta repository interfaces
type SnapshotRepositoryFacade interface {
	SnapshotReader
	SnapshotWriter
	DeltaReader
	DeltaWriter
}
