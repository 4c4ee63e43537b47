package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	portsrepo "github.com/byildiz78/kd-cdc-sub000/internal/core/ports/repositories"
	"github.com/byildiz78/kd-cdc-sub000/internal/models"
	"github.com/byildiz78/kd-cdc-sub000/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionVersionColumns = `
	company_id, order_key, transaction_id, version, is_latest, content_hash,
	sheet_date, branch_id, branch_code, accounting_code, main_accounting_code,
	is_main_combo, is_external, tax_percent, quantity, sub_total, tax_total, total,
	import_date, sync_batch_id`

type transactionVersionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionVersionRepository creates a new repository for versioned order rows.
func NewTransactionVersionRepository(pool *pgxpool.Pool) portsrepo.TransactionVersionRepositoryFacade {
	return &transactionVersionRepository{pool: pool}
}

func (r *transactionVersionRepository) FindLatestByOrderKey(ctx context.Context, companyID, orderKey string) ([]domain.TransactionVersion, error) {
	query := `
		SELECT ` + transactionVersionColumns + `
		FROM transaction_versions
		WHERE company_id = $1 AND order_key = $2 AND is_latest
		ORDER BY transaction_id;
	`
	rows, err := r.pool.Query(ctx, query, companyID, orderKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest versions for order %s: %w", orderKey, err)
	}
	defer rows.Close()

	versions, err := scanTransactionVersions(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan latest versions for order %s: %w", orderKey, err)
	}
	return mapping.ToDomainTransactionVersionSlice(versions), nil
}

func (r *transactionVersionRepository) FindLatestBySummaryKey(ctx context.Context, companyID string, key domain.SummaryKey) ([]domain.TransactionVersion, error) {
	sheetDate, err := key.Date()
	if err != nil {
		return nil, fmt.Errorf("invalid sheet date in summary key: %w", err)
	}
	taxPercent, err := decimal.NewFromString(key.TaxPercent)
	if err != nil {
		return nil, fmt.Errorf("invalid tax percent in summary key: %w", err)
	}

	query := `
		SELECT ` + transactionVersionColumns + `
		FROM transaction_versions
		WHERE company_id = $1 AND is_latest
		  AND sheet_date = $2 AND branch_code = $3
		  AND accounting_code = $4 AND main_accounting_code = $5
		  AND is_main_combo = $6 AND tax_percent = $7
		  AND is_external = $8 AND branch_id = $9
		ORDER BY order_key, transaction_id;
	`
	rows, err := r.pool.Query(ctx, query,
		companyID,
		sheetDate,
		key.BranchCode,
		key.AccountingCode,
		key.MainAccountingCode,
		key.IsMainCombo,
		taxPercent,
		key.IsExternal,
		key.BranchID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest versions by summary key: %w", err)
	}
	defer rows.Close()

	versions, err := scanTransactionVersions(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan latest versions by summary key: %w", err)
	}
	return mapping.ToDomainTransactionVersionSlice(versions), nil
}

func (r *transactionVersionRepository) MaxImportDateForOrders(ctx context.Context, companyID string, orderKeys []string) (*time.Time, error) {
	if len(orderKeys) == 0 {
		return nil, nil
	}
	query := `
		SELECT MAX(import_date)
		FROM transaction_versions
		WHERE company_id = $1 AND order_key = ANY($2) AND is_latest;
	`
	var maxImport *time.Time
	if err := r.pool.QueryRow(ctx, query, companyID, orderKeys).Scan(&maxImport); err != nil {
		return nil, fmt.Errorf("failed to query max import date: %w", err)
	}
	return maxImport, nil
}

// ReplaceLatestVersion flips the order's current rows off and inserts the new
// row-set within one database transaction.
func (r *transactionVersionRepository) ReplaceLatestVersion(ctx context.Context, companyID, orderKey string, newRows []domain.TransactionVersion) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	demoteQuery := `
		UPDATE transaction_versions
		SET is_latest = FALSE
		WHERE company_id = $1 AND order_key = $2 AND is_latest;
	`
	if _, err := tx.Exec(ctx, demoteQuery, companyID, orderKey); err != nil {
		return fmt.Errorf("failed to demote latest versions for order %s: %w", orderKey, err)
	}

	insertQuery := `
		INSERT INTO transaction_versions (` + transactionVersionColumns + `, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	now := time.Now()
	batch := &pgx.Batch{}
	for _, row := range newRows {
		m := mapping.ToModelTransactionVersion(row)
		batch.Queue(insertQuery,
			m.CompanyID,
			m.OrderKey,
			m.TransactionID,
			m.Version,
			m.IsLatest,
			m.ContentHash,
			m.SheetDate,
			m.BranchID,
			m.BranchCode,
			m.AccountingCode,
			m.MainAccountingCode,
			m.IsMainCombo,
			m.IsExternal,
			m.TaxPercent,
			m.Quantity,
			m.SubTotal,
			m.TaxTotal,
			m.Total,
			m.ImportDate,
			m.SyncBatchID,
			now,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert version rows for order %s: %w", orderKey, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit version replacement for order %s: %w", orderKey, err)
	}
	return nil
}

func scanTransactionVersions(rows pgx.Rows) ([]models.TransactionVersion, error) {
	versions := []models.TransactionVersion{}
	for rows.Next() {
		var m models.TransactionVersion
		if err := rows.Scan(
			&m.CompanyID,
			&m.OrderKey,
			&m.TransactionID,
			&m.Version,
			&m.IsLatest,
			&m.ContentHash,
			&m.SheetDate,
			&m.BranchID,
			&m.BranchCode,
			&m.AccountingCode,
			&m.MainAccountingCode,
			&m.IsMainCombo,
			&m.IsExternal,
			&m.TaxPercent,
			&m.Quantity,
			&m.SubTotal,
			&m.TaxTotal,
			&m.Total,
			&m.ImportDate,
			&m.SyncBatchID,
		); err != nil {
			return nil, err
		}
		versions = append(versions, m)
	}
	return versions, rows.Err()
}
