package services

import (
	"context"

	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	"github.com/byildiz78/kd-cdc-sub000/internal/dto"
)

// CompanySvc exposes tenant lookups to handlers and the scheduler.
type CompanySvc interface {
	// GetCompanyByID retrieves a company by its id.
	GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
}

// ERPTokenSvc manages the bearer tokens that scope ERP calls to one company.
type ERPTokenSvc interface {
	// CreateToken generates a new ERP token for a company and returns the
	// plaintext exactly once.
	CreateToken(ctx context.Context, req dto.CreateERPTokenRequest) (*dto.CreateERPTokenResponse, error)

	// ValidateToken resolves a presented bearer token to its company.
	ValidateToken(ctx context.Context, tokenString string) (*domain.Company, error)
}
