package pgsql

import (
	"context"
	"fmt"

	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	portsrepo "github.com/byildiz78/kd-cdc-sub000/internal/core/ports/repositories"
	"github.com/byildiz78/kd-cdc-sub000/internal/models"
	"github.com/byildiz78/kd-cdc-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const changeLogColumns = `
	change_log_id, company_id, order_key, change_type, old_hash, new_hash,
	old_version, new_version, changed_fields, diff_snapshot, sync_batch_id, detected_at`

type changeLogRepository struct {
	pool *pgxpool.Pool
}

// NewChangeLogRepository creates a new repository for audit change-log entries.
func NewChangeLogRepository(pool *pgxpool.Pool) portsrepo.ChangeLogRepositoryFacade {
	return &changeLogRepository{pool: pool}
}

func (r *changeLogRepository) FindEntriesByBatchID(ctx context.Context, syncBatchID string) ([]domain.ChangeLogEntry, error) {
	query := `
		SELECT ` + changeLogColumns + `
		FROM change_log
		WHERE sync_batch_id = $1
		ORDER BY order_key;
	`
	rows, err := r.pool.Query(ctx, query, syncBatchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query change log for batch %s: %w", syncBatchID, err)
	}
	defer rows.Close()

	entries, err := scanChangeLogEntries(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan change log for batch %s: %w", syncBatchID, err)
	}
	return mapping.ToDomainChangeLogEntrySlice(entries), nil
}

func (r *changeLogRepository) FindEntriesByOrderKey(ctx context.Context, companyID, orderKey string) ([]domain.ChangeLogEntry, error) {
	query := `
		SELECT ` + changeLogColumns + `
		FROM change_log
		WHERE company_id = $1 AND order_key = $2
		ORDER BY detected_at DESC;
	`
	rows, err := r.pool.Query(ctx, query, companyID, orderKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query change log for order %s: %w", orderKey, err)
	}
	defer rows.Close()

	entries, err := scanChangeLogEntries(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan change log for order %s: %w", orderKey, err)
	}
	return mapping.ToDomainChangeLogEntrySlice(entries), nil
}

func (r *changeLogRepository) SaveEntry(ctx context.Context, entry domain.ChangeLogEntry) error {
	query := `
		INSERT INTO change_log (` + changeLogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	m := mapping.ToModelChangeLogEntry(entry)
	_, err := r.pool.Exec(ctx, query,
		m.ChangeLogID,
		m.CompanyID,
		m.OrderKey,
		m.ChangeType,
		m.OldHash,
		m.NewHash,
		m.OldVersion,
		m.NewVersion,
		m.ChangedFields,
		m.DiffSnapshot,
		m.SyncBatchID,
		m.DetectedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save change log entry for order %s: %w", entry.OrderKey, err)
	}
	return nil
}

func scanChangeLogEntries(rows pgx.Rows) ([]models.ChangeLogEntry, error) {
	entries := []models.ChangeLogEntry{}
	for rows.Next() {
		var m models.ChangeLogEntry
		if err := rows.Scan(
			&m.ChangeLogID,
			&m.CompanyID,
			&m.OrderKey,
			&m.ChangeType,
			&m.OldHash,
			&m.NewHash,
			&m.OldVersion,
			&m.NewVersion,
			&m.ChangedFields,
			&m.DiffSnapshot,
			&m.SyncBatchID,
			&m.DetectedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, m)
	}
	return entries, rows.Err()
}
