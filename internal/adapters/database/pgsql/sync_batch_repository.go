package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/byildiz78/kd-cdc-sub000/internal/apperrors"
	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	portsrepo "github.com/byildiz78/kd-cdc-sub000/internal/core/ports/repositories"
	"github.com/byildiz78/kd-cdc-sub000/internal/models"
	"github.com/byildiz78/kd-cdc-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const syncBatchColumns = `
	sync_batch_id, company_id, start_date, end_date, status, started_at,
	completed_at, duration_ms, total_records, new_records, updated_records,
	unchanged_records, error_message, error_details`

type syncBatchRepository struct {
	pool *pgxpool.Pool
}

// NewSyncBatchRepository creates a new repository for sync batches.
func NewSyncBatchRepository(pool *pgxpool.Pool) portsrepo.SyncBatchRepositoryFacade {
	return &syncBatchRepository{pool: pool}
}

func (r *syncBatchRepository) FindBatchByID(ctx context.Context, syncBatchID string) (*domain.SyncBatch, error) {
	query := `
		SELECT ` + syncBatchColumns + `
		FROM sync_batches
		WHERE sync_batch_id = $1;
	`
	var m models.SyncBatch
	err := r.pool.QueryRow(ctx, query, syncBatchID).Scan(
		&m.SyncBatchID,
		&m.CompanyID,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.StartedAt,
		&m.CompletedAt,
		&m.DurationMs,
		&m.TotalRecords,
		&m.NewRecords,
		&m.UpdatedRecords,
		&m.UnchangedRecords,
		&m.ErrorMessage,
		&m.ErrorDetails,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sync batch %s: %w", syncBatchID, err)
	}
	batch := mapping.ToDomainSyncBatch(m)
	return &batch, nil
}

func (r *syncBatchRepository) CreateBatch(ctx context.Context, batch domain.SyncBatch) error {
	query := `
		INSERT INTO sync_batches (` + syncBatchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	m := mapping.ToModelSyncBatch(batch)
	_, err := r.pool.Exec(ctx, query,
		m.SyncBatchID,
		m.CompanyID,
		m.StartDate,
		m.EndDate,
		m.Status,
		m.StartedAt,
		m.CompletedAt,
		m.DurationMs,
		m.TotalRecords,
		m.NewRecords,
		m.UpdatedRecords,
		m.UnchangedRecords,
		m.ErrorMessage,
		m.ErrorDetails,
	)
	if err != nil {
		return fmt.Errorf("failed to create sync batch %s: %w", batch.SyncBatchID, err)
	}
	return nil
}

// FinalizeBatch writes the terminal state. The status = 'RUNNING' guard makes
// finalization exactly-once: a second attempt affects no rows and reports
// ErrConflict.
func (r *syncBatchRepository) FinalizeBatch(ctx context.Context, batch domain.SyncBatch) error {
	query := `
		UPDATE sync_batches
		SET status = $2, completed_at = $3, duration_ms = $4,
			total_records = $5, new_records = $6, updated_records = $7,
			unchanged_records = $8, error_message = $9, error_details = $10
		WHERE sync_batch_id = $1 AND status = 'RUNNING';
	`
	m := mapping.ToModelSyncBatch(batch)
	tag, err := r.pool.Exec(ctx, query,
		m.SyncBatchID,
		m.Status,
		m.CompletedAt,
		m.DurationMs,
		m.TotalRecords,
		m.NewRecords,
		m.UpdatedRecords,
		m.UnchangedRecords,
		m.ErrorMessage,
		m.ErrorDetails,
	)
	if err != nil {
		return fmt.Errorf("failed to finalize sync batch %s: %w", batch.SyncBatchID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}
