package services

import (
	"context"
	"errors"

	"github.com/byildiz78/kd-cdc-sub000/internal/apperrors"
	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	portsrepo "github.com/byildiz78/kd-cdc-sub000/internal/core/ports/repositories"
	portssvc "github.com/byildiz78/kd-cdc-sub000/internal/core/ports/services"
)

type companyService struct {
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewCompanyService creates a new CompanySvc.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade) portssvc.CompanySvc {
	return &companyService{companyRepo: companyRepo}
}

// Ensure companyService implements the portssvc.CompanySvc interface
var _ portssvc.CompanySvc = (*companyService)(nil)

func (s *companyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("company " + companyID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to load company "+companyID, err)
	}
	return company, nil
}
