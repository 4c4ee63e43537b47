package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/byildiz78/kd-cdc-sub000/internal/apperrors"
	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	portsrepo "github.com/byildiz78/kd-cdc-sub000/internal/core/ports/repositories"
	portssvc "github.com/byildiz78/kd-cdc-sub000/internal/core/ports/services"
	"github.com/byildiz78/kd-cdc-sub000/internal/dto"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const erpTokenPrefix = "erp_"

var ErrInvalidToken = errors.New("invalid or expired token")

// erpTokenService issues and validates the opaque bearer tokens the ERP uses.
// Only bcrypt hashes are stored; the plaintext is returned exactly once at
// creation.
type erpTokenService struct {
	tokenRepo   portsrepo.ERPTokenRepository
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewERPTokenService creates a new ERPTokenSvc.
func NewERPTokenService(tokenRepo portsrepo.ERPTokenRepository, companyRepo portsrepo.CompanyRepositoryFacade) portssvc.ERPTokenSvc {
	return &erpTokenService{
		tokenRepo:   tokenRepo,
		companyRepo: companyRepo,
	}
}

// Ensure erpTokenService implements the portssvc.ERPTokenSvc interface
var _ portssvc.ERPTokenSvc = (*erpTokenService)(nil)

func (s *erpTokenService) CreateToken(ctx context.Context, req dto.CreateERPTokenRequest) (*dto.CreateERPTokenResponse, error) {
	if _, err := s.companyRepo.FindCompanyByID(ctx, req.CompanyID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("company " + req.CompanyID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to load company "+req.CompanyID, err)
	}

	plaintext, err := generateTokenSecret()
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to generate token", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to hash token", err)
	}

	token := domain.ERPToken{
		TokenID:   uuid.NewString(),
		CompanyID: req.CompanyID,
		Name:      req.Name,
		TokenHash: string(hash),
		CreatedAt: time.Now(),
	}
	if req.ExpiresIn != nil {
		expiresAt := time.Now().Add(time.Duration(*req.ExpiresIn) * time.Hour)
		token.ExpiresAt = &expiresAt
	}
	if err := s.tokenRepo.Create(ctx, &token); err != nil {
		return nil, apperrors.NewAppError(500, "failed to persist token", err)
	}

	return &dto.CreateERPTokenResponse{
		TokenID:   token.TokenID,
		Token:     plaintext,
		ExpiresAt: token.ExpiresAt,
	}, nil
}

func (s *erpTokenService) ValidateToken(ctx context.Context, tokenString string) (*domain.Company, error) {
	tokens, err := s.tokenRepo.FindActiveTokens(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load active tokens", err)
	}

	for i := range tokens {
		token := &tokens[i]
		if token.IsExpired() || token.IsRevoked() {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(token.TokenHash), []byte(tokenString)) != nil {
			continue
		}

		if err := s.tokenRepo.UpdateLastUsed(ctx, token.TokenID, time.Now()); err != nil {
			return nil, apperrors.NewAppError(500, "failed to stamp token use", err)
		}
		company, err := s.companyRepo.FindCompanyByID(ctx, token.CompanyID)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to load token company", err)
		}
		return company, nil
	}
	return nil, ErrInvalidToken
}

func generateTokenSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return erpTokenPrefix + hex.EncodeToString(buf), nil
}
