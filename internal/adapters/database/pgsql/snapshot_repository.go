package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/byildiz78/kd-cdc-sub000/internal/apperrors"
	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	portsrepo "github.com/byildiz78/kd-cdc-sub000/internal/core/ports/repositories"
	"github.com/byildiz78/kd-cdc-sub000/internal/models"
	"github.com/byildiz78/kd-cdc-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const snapshotColumns = `
	snapshot_id, company_id, snapshot_date, data_start_date, data_end_date,
	record_count, delta_count, erp_status, erp_pulled_at, erp_confirmed_at,
	erp_error_message, created_at`

const deltaColumns = `
	delta_id, company_id, sheet_date, branch_code, accounting_code,
	main_accounting_code, is_main_combo, tax_percent, is_external, branch_id,
	change_type, old_quantity, old_sub_total, old_tax_total, old_total,
	new_quantity, new_sub_total, new_tax_total, new_total,
	delta_type, snapshot_id, processed, processed_at, sync_batch_id, created_at`

type snapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository creates a new repository for snapshots and delta records.
func NewSnapshotRepository(pool *pgxpool.Pool) portsrepo.SnapshotRepositoryFacade {
	return &snapshotRepository{pool: pool}
}

func (r *snapshotRepository) FindSnapshotByID(ctx context.Context, snapshotID string) (*domain.Snapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM snapshots
		WHERE snapshot_id = $1;
	`
	return r.querySnapshot(ctx, query, snapshotID)
}

func (r *snapshotRepository) FindCurrentSnapshot(ctx context.Context, companyID string) (*domain.Snapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM snapshots
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT 1;
	`
	return r.querySnapshot(ctx, query, companyID)
}

func (r *snapshotRepository) querySnapshot(ctx context.Context, query string, arg any) (*domain.Snapshot, error) {
	var m models.Snapshot
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&m.SnapshotID,
		&m.CompanyID,
		&m.SnapshotDate,
		&m.DataStartDate,
		&m.DataEndDate,
		&m.RecordCount,
		&m.DeltaCount,
		&m.ERPStatus,
		&m.ERPPulledAt,
		&m.ERPConfirmedAt,
		&m.ERPErrorMessage,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find snapshot: %w", err)
	}
	snapshot := mapping.ToDomainSnapshot(m)
	return &snapshot, nil
}

func (r *snapshotRepository) SaveSnapshot(ctx context.Context, snapshot domain.Snapshot) error {
	query := `
		INSERT INTO snapshots (` + snapshotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	m := mapping.ToModelSnapshot(snapshot)
	_, err := r.pool.Exec(ctx, query,
		m.SnapshotID,
		m.CompanyID,
		m.SnapshotDate,
		m.DataStartDate,
		m.DataEndDate,
		m.RecordCount,
		m.DeltaCount,
		m.ERPStatus,
		m.ERPPulledAt,
		m.ERPConfirmedAt,
		m.ERPErrorMessage,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", snapshot.SnapshotID, err)
	}
	return nil
}

func (r *snapshotRepository) UpdateSnapshot(ctx context.Context, snapshot domain.Snapshot) error {
	query := `
		UPDATE snapshots
		SET record_count = $2, delta_count = $3, erp_status = $4,
			erp_pulled_at = $5, erp_confirmed_at = $6, erp_error_message = $7
		WHERE snapshot_id = $1;
	`
	m := mapping.ToModelSnapshot(snapshot)
	tag, err := r.pool.Exec(ctx, query,
		m.SnapshotID,
		m.RecordCount,
		m.DeltaCount,
		m.ERPStatus,
		m.ERPPulledAt,
		m.ERPConfirmedAt,
		m.ERPErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to update snapshot %s: %w", snapshot.SnapshotID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *snapshotRepository) ListDeltas(ctx context.Context, companyID string, startDate, endDate time.Time, onlyUnprocessed bool) ([]domain.DeltaWithOrders, error) {
	query := `
		SELECT ` + deltaColumns + `
		FROM delta_records
		WHERE company_id = $1 AND sheet_date BETWEEN $2 AND $3
	`
	if onlyUnprocessed {
		query += ` AND NOT processed`
	}
	query += ` ORDER BY created_at, delta_id;`

	rows, err := r.pool.Query(ctx, query, companyID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query delta records: %w", err)
	}
	defer rows.Close()

	deltas := []models.DeltaRecord{}
	for rows.Next() {
		var m models.DeltaRecord
		if err := rows.Scan(
			&m.DeltaID,
			&m.CompanyID,
			&m.SheetDate,
			&m.BranchCode,
			&m.AccountingCode,
			&m.MainAccountingCode,
			&m.IsMainCombo,
			&m.TaxPercent,
			&m.IsExternal,
			&m.BranchID,
			&m.ChangeType,
			&m.OldQuantity,
			&m.OldSubTotal,
			&m.OldTaxTotal,
			&m.OldTotal,
			&m.NewQuantity,
			&m.NewSubTotal,
			&m.NewTaxTotal,
			&m.NewTotal,
			&m.DeltaType,
			&m.SnapshotID,
			&m.Processed,
			&m.ProcessedAt,
			&m.SyncBatchID,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan delta record: %w", err)
		}
		deltas = append(deltas, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating delta records: %w", err)
	}

	result := make([]domain.DeltaWithOrders, 0, len(deltas))
	for _, d := range deltas {
		orders, err := r.findAffectedOrders(ctx, d.DeltaID)
		if err != nil {
			return nil, err
		}
		result = append(result, domain.DeltaWithOrders{
			Delta:          mapping.ToDomainDeltaRecord(d),
			AffectedOrders: orders,
		})
	}
	return result, nil
}

func (r *snapshotRepository) findAffectedOrders(ctx context.Context, deltaID string) ([]domain.AffectedOrder, error) {
	query := `
		SELECT affected_order_id, delta_id, order_key, quantity, sub_total, tax_total, total,
			old_version, new_version, old_hash, new_hash
		FROM affected_orders
		WHERE delta_id = $1
		ORDER BY order_key;
	`
	rows, err := r.pool.Query(ctx, query, deltaID)
	if err != nil {
		return nil, fmt.Errorf("failed to query affected orders for delta %s: %w", deltaID, err)
	}
	defer rows.Close()

	orders := []models.AffectedOrder{}
	for rows.Next() {
		var m models.AffectedOrder
		if err := rows.Scan(
			&m.AffectedOrderID,
			&m.DeltaID,
			&m.OrderKey,
			&m.Quantity,
			&m.SubTotal,
			&m.TaxTotal,
			&m.Total,
			&m.OldVersion,
			&m.NewVersion,
			&m.OldHash,
			&m.NewHash,
		); err != nil {
			return nil, fmt.Errorf("failed to scan affected order for delta %s: %w", deltaID, err)
		}
		orders = append(orders, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating affected orders for delta %s: %w", deltaID, err)
	}
	return mapping.ToDomainAffectedOrderSlice(orders), nil
}

func (r *snapshotRepository) CountDeltasBySnapshot(ctx context.Context, snapshotID string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM delta_records
		WHERE snapshot_id = $1;
	`
	var count int64
	if err := r.pool.QueryRow(ctx, query, snapshotID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count deltas for snapshot %s: %w", snapshotID, err)
	}
	return count, nil
}

// SaveDeltaWithAffectedOrders persists a delta and its affected-order rows
// within one database transaction.
func (r *snapshotRepository) SaveDeltaWithAffectedOrders(ctx context.Context, delta domain.DeltaRecord, orders []domain.AffectedOrder) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	deltaQuery := `
		INSERT INTO delta_records (` + deltaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25);
	`
	d := mapping.ToModelDeltaRecord(delta)
	_, err = tx.Exec(ctx, deltaQuery,
		d.DeltaID,
		d.CompanyID,
		d.SheetDate,
		d.BranchCode,
		d.AccountingCode,
		d.MainAccountingCode,
		d.IsMainCombo,
		d.TaxPercent,
		d.IsExternal,
		d.BranchID,
		d.ChangeType,
		d.OldQuantity,
		d.OldSubTotal,
		d.OldTaxTotal,
		d.OldTotal,
		d.NewQuantity,
		d.NewSubTotal,
		d.NewTaxTotal,
		d.NewTotal,
		d.DeltaType,
		d.SnapshotID,
		d.Processed,
		d.ProcessedAt,
		d.SyncBatchID,
		d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert delta %s: %w", delta.DeltaID, err)
	}

	orderQuery := `
		INSERT INTO affected_orders (affected_order_id, delta_id, order_key, quantity, sub_total, tax_total, total, old_version, new_version, old_hash, new_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for _, order := range orders {
		o := mapping.ToModelAffectedOrder(order)
		batch.Queue(orderQuery,
			o.AffectedOrderID,
			o.DeltaID,
			o.OrderKey,
			o.Quantity,
			o.SubTotal,
			o.TaxTotal,
			o.Total,
			o.OldVersion,
			o.NewVersion,
			o.OldHash,
			o.NewHash,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert affected orders for delta %s: %w", delta.DeltaID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delta %s: %w", delta.DeltaID, err)
	}
	return nil
}

func (r *snapshotRepository) MarkDeltasProcessed(ctx context.Context, snapshotID string, processedAt time.Time) (int64, error) {
	query := `
		UPDATE delta_records
		SET processed = TRUE, processed_at = $2
		WHERE snapshot_id = $1 AND NOT processed;
	`
	tag, err := r.pool.Exec(ctx, query, snapshotID, processedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to mark deltas processed for snapshot %s: %w", snapshotID, err)
	}
	return tag.RowsAffected(), nil
}
