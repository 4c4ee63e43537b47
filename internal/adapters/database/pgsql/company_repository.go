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

const companyColumns = `
	company_id, name, code, pos_api_base_url, pos_api_key, sync_type,
	sync_interval_minutes, sync_day, sync_hour, sync_minute, is_active,
	sync_enabled, last_sync_at, last_import_date, created_at, last_updated_at`

type companyRepository struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository creates a new repository for tenant companies.
func NewCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &companyRepository{pool: pool}
}

func (r *companyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM companies
		WHERE company_id = $1;
	`
	var m models.Company
	err := r.pool.QueryRow(ctx, query, companyID).Scan(
		&m.CompanyID,
		&m.Name,
		&m.Code,
		&m.POSAPIBaseURL,
		&m.POSAPIKey,
		&m.SyncType,
		&m.SyncIntervalMinutes,
		&m.SyncDay,
		&m.SyncHour,
		&m.SyncMinute,
		&m.IsActive,
		&m.SyncEnabled,
		&m.LastSyncAt,
		&m.LastImportDate,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company %s: %w", companyID, err)
	}
	company := mapping.ToDomainCompany(m)
	return &company, nil
}

func (r *companyRepository) ListSchedulableCompanies(ctx context.Context) ([]domain.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM companies
		WHERE is_active AND sync_enabled
		ORDER BY code;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedulable companies: %w", err)
	}
	defer rows.Close()

	companies := []domain.Company{}
	for rows.Next() {
		var m models.Company
		if err := rows.Scan(
			&m.CompanyID,
			&m.Name,
			&m.Code,
			&m.POSAPIBaseURL,
			&m.POSAPIKey,
			&m.SyncType,
			&m.SyncIntervalMinutes,
			&m.SyncDay,
			&m.SyncHour,
			&m.SyncMinute,
			&m.IsActive,
			&m.SyncEnabled,
			&m.LastSyncAt,
			&m.LastImportDate,
			&m.CreatedAt,
			&m.LastUpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan company row: %w", err)
		}
		companies = append(companies, mapping.ToDomainCompany(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating company rows: %w", err)
	}
	return companies, nil
}

func (r *companyRepository) UpdateLastSyncAt(ctx context.Context, companyID string, lastSyncAt time.Time) error {
	query := `
		UPDATE companies
		SET last_sync_at = $2, last_updated_at = $2
		WHERE company_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, companyID, lastSyncAt)
	if err != nil {
		return fmt.Errorf("failed to update last sync for company %s: %w", companyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateLastImportDate only moves the watermark forward; a concurrent run with
// an older watermark cannot roll it back.
func (r *companyRepository) UpdateLastImportDate(ctx context.Context, companyID string, lastImportDate time.Time) error {
	query := `
		UPDATE companies
		SET last_import_date = $2, last_updated_at = NOW()
		WHERE company_id = $1
		  AND (last_import_date IS NULL OR last_import_date < $2);
	`
	if _, err := r.pool.Exec(ctx, query, companyID, lastImportDate); err != nil {
		return fmt.Errorf("failed to update last import date for company %s: %w", companyID, err)
	}
	return nil
}
