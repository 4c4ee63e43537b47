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
	"github.com/shopspring/decimal"
)

const summaryColumns = `
	summary_id, company_id, sheet_date, branch_code, accounting_code,
	main_accounting_code, is_main_combo, tax_percent, is_external, branch_id,
	quantity, sub_total, tax_total, total, version, data_hash, last_modified, last_sync_batch_id`

type summaryRepository struct {
	pool *pgxpool.Pool
}

// NewSummaryRepository creates a new repository for materialized summary records.
func NewSummaryRepository(pool *pgxpool.Pool) portsrepo.SummaryRepositoryFacade {
	return &summaryRepository{pool: pool}
}

func (r *summaryRepository) FindByKey(ctx context.Context, companyID string, key domain.SummaryKey) (*domain.SummaryRecord, error) {
	sheetDate, err := key.Date()
	if err != nil {
		return nil, fmt.Errorf("invalid sheet date in summary key: %w", err)
	}
	taxPercent, err := decimal.NewFromString(key.TaxPercent)
	if err != nil {
		return nil, fmt.Errorf("invalid tax percent in summary key: %w", err)
	}

	query := `
		SELECT ` + summaryColumns + `
		FROM summary_records
		WHERE company_id = $1
		  AND sheet_date = $2 AND branch_code = $3
		  AND accounting_code = $4 AND main_accounting_code = $5
		  AND is_main_combo = $6 AND tax_percent = $7
		  AND is_external = $8 AND branch_id = $9;
	`
	var m models.SummaryRecord
	err = r.pool.QueryRow(ctx, query,
		companyID,
		sheetDate,
		key.BranchCode,
		key.AccountingCode,
		key.MainAccountingCode,
		key.IsMainCombo,
		taxPercent,
		key.IsExternal,
		key.BranchID,
	).Scan(
		&m.SummaryID,
		&m.CompanyID,
		&m.SheetDate,
		&m.BranchCode,
		&m.AccountingCode,
		&m.MainAccountingCode,
		&m.IsMainCombo,
		&m.TaxPercent,
		&m.IsExternal,
		&m.BranchID,
		&m.Quantity,
		&m.SubTotal,
		&m.TaxTotal,
		&m.Total,
		&m.Version,
		&m.DataHash,
		&m.LastModified,
		&m.LastSyncBatchID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find summary record by key: %w", err)
	}

	record := mapping.ToDomainSummaryRecord(m)
	return &record, nil
}

func (r *summaryRepository) ListByDateRange(ctx context.Context, companyID string, startDate, endDate time.Time) ([]domain.SummaryRecord, error) {
	query := `
		SELECT ` + summaryColumns + `
		FROM summary_records
		WHERE company_id = $1 AND sheet_date BETWEEN $2 AND $3
		ORDER BY sheet_date, branch_code;
	`
	rows, err := r.pool.Query(ctx, query, companyID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query summary records: %w", err)
	}
	defer rows.Close()

	records := []models.SummaryRecord{}
	for rows.Next() {
		var m models.SummaryRecord
		if err := rows.Scan(
			&m.SummaryID,
			&m.CompanyID,
			&m.SheetDate,
			&m.BranchCode,
			&m.AccountingCode,
			&m.MainAccountingCode,
			&m.IsMainCombo,
			&m.TaxPercent,
			&m.IsExternal,
			&m.BranchID,
			&m.Quantity,
			&m.SubTotal,
			&m.TaxTotal,
			&m.Total,
			&m.Version,
			&m.DataHash,
			&m.LastModified,
			&m.LastSyncBatchID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan summary record: %w", err)
		}
		records = append(records, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating summary records: %w", err)
	}
	return mapping.ToDomainSummaryRecordSlice(records), nil
}

func (r *summaryRepository) CountByDateRange(ctx context.Context, companyID string, startDate, endDate time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM summary_records
		WHERE company_id = $1 AND sheet_date BETWEEN $2 AND $3;
	`
	var count int64
	if err := r.pool.QueryRow(ctx, query, companyID, startDate, endDate).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count summary records: %w", err)
	}
	return count, nil
}

// UpsertSummary inserts or replaces the record for its dimensional key. The
// unique index on the key columns makes the upsert race-free.
func (r *summaryRepository) UpsertSummary(ctx context.Context, record domain.SummaryRecord) error {
	query := `
		INSERT INTO summary_records (` + summaryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (company_id, sheet_date, branch_code, accounting_code, main_accounting_code, is_main_combo, tax_percent, is_external, branch_id)
		DO UPDATE SET
			quantity = EXCLUDED.quantity,
			sub_total = EXCLUDED.sub_total,
			tax_total = EXCLUDED.tax_total,
			total = EXCLUDED.total,
			version = EXCLUDED.version,
			data_hash = EXCLUDED.data_hash,
			last_modified = EXCLUDED.last_modified,
			last_sync_batch_id = EXCLUDED.last_sync_batch_id;
	`
	m := mapping.ToModelSummaryRecord(record)
	_, err := r.pool.Exec(ctx, query,
		m.SummaryID,
		m.CompanyID,
		m.SheetDate,
		m.BranchCode,
		m.AccountingCode,
		m.MainAccountingCode,
		m.IsMainCombo,
		m.TaxPercent,
		m.IsExternal,
		m.BranchID,
		m.Quantity,
		m.SubTotal,
		m.TaxTotal,
		m.Total,
		m.Version,
		m.DataHash,
		m.LastModified,
		m.LastSyncBatchID,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert summary record %s: %w", record.SummaryID, err)
	}
	return nil
}
