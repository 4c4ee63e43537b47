package repositories

import (
	"context"
	"time"

	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
)

// CompanyReader defines read operations for tenant companies.
type CompanyReader interface {
	// FindCompanyByID retrieves a company by its id.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ListSchedulableCompanies retrieves all active companies with sync enabled.
	ListSchedulableCompanies(ctx context.Context) ([]domain.Company, error)
}

// CompanyWriter defines write operations for tenant companies.
type CompanyWriter interface {
	// UpdateLastSyncAt stamps the company's last scheduler dispatch time.
	UpdateLastSyncAt(ctx context.Context, companyID string, lastSyncAt time.Time) error

	// UpdateLastImportDate persists the import-date high-water mark used for
	// incremental sync windows. Only moves forward.
	UpdateLastImportDate(ctx context.Context, companyID string, lastImportDate time.Time) error
}

// CompanyRepositoryFacade combines all company repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}

// ERPTokenRepository defines data access for ERP bearer tokens.
type ERPTokenRepository interface {
	// Create persists a new ERP token.
	Create(ctx context.Context, token *domain.ERPToken) error

	// FindActiveTokens retrieves all non-revoked, non-expired tokens. The
	// validating service compares the presented secret against each hash.
	FindActiveTokens(ctx context.Context) ([]domain.ERPToken, error)

	// UpdateLastUsed stamps the token's last successful use.
	UpdateLastUsed(ctx context.Context, tokenID string, usedAt time.Time) error

	// Revoke marks a token revoked.
	Revoke(ctx context.Context, tokenID string, revokedAt time.Time) error
}
