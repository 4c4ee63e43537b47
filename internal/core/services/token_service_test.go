package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/byildiz78/kd-cdc-sub000/internal/apperrors"
	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	portssvc "github.com/byildiz78/kd-cdc-sub000/internal/core/ports/services"
	"github.com/byildiz78/kd-cdc-sub000/internal/core/services"
	"github.com/byildiz78/kd-cdc-sub000/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type ERPTokenServiceTestSuite struct {
	suite.Suite
	mockTokenRepo   *MockERPTokenRepository
	mockCompanyRepo *MockCompanyRepository
	service         portssvc.ERPTokenSvc
	ctx             context.Context
}

func (s *ERPTokenServiceTestSuite) SetupTest() {
	s.mockTokenRepo = new(MockERPTokenRepository)
	s.mockCompanyRepo = new(MockCompanyRepository)
	s.service = services.NewERPTokenService(s.mockTokenRepo, s.mockCompanyRepo)
	s.ctx = context.Background()
}

func TestERPTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ERPTokenServiceTestSuite))
}

func (s *ERPTokenServiceTestSuite) TestCreateTokenReturnsPlaintextOnce() {
	s.mockCompanyRepo.On("FindCompanyByID", s.ctx, "company-1").
		Return(&domain.Company{CompanyID: "company-1"}, nil).Once()
	s.mockTokenRepo.On("Create", s.ctx, mock.MatchedBy(func(t *domain.ERPToken) bool {
		return t.CompanyID == "company-1" && t.Name == "erp-prod" &&
			t.TokenHash != "" && t.ExpiresAt == nil
	})).Return(nil).Once()

	resp, err := s.service.CreateToken(s.ctx, dto.CreateERPTokenRequest{
		CompanyID: "company-1",
		Name:      "erp-prod",
	})

	s.Require().NoError(err)
	s.Require().True(strings.HasPrefix(resp.Token, "erp_"))
	s.Require().NotEmpty(resp.TokenID)
	s.Require().Nil(resp.ExpiresAt)
	s.mockTokenRepo.AssertExpectations(s.T())
}

func (s *ERPTokenServiceTestSuite) TestCreateTokenWithExpiry() {
	expiresIn := int64(24)

	s.mockCompanyRepo.On("FindCompanyByID", s.ctx, "company-1").
		Return(&domain.Company{CompanyID: "company-1"}, nil).Once()
	s.mockTokenRepo.On("Create", s.ctx, mock.MatchedBy(func(t *domain.ERPToken) bool {
		return t.ExpiresAt != nil && t.ExpiresAt.After(time.Now().Add(23*time.Hour))
	})).Return(nil).Once()

	resp, err := s.service.CreateToken(s.ctx, dto.CreateERPTokenRequest{
		CompanyID: "company-1",
		Name:      "erp-staging",
		ExpiresIn: &expiresIn,
	})

	s.Require().NoError(err)
	s.Require().NotNil(resp.ExpiresAt)
	s.mockTokenRepo.AssertExpectations(s.T())
}

func (s *ERPTokenServiceTestSuite) TestCreateTokenUnknownCompany() {
	s.mockCompanyRepo.On("FindCompanyByID", s.ctx, "company-9").
		Return(nil, apperrors.ErrNotFound).Once()

	resp, err := s.service.CreateToken(s.ctx, dto.CreateERPTokenRequest{CompanyID: "company-9"})

	s.Require().Nil(resp)
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
	s.mockTokenRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *ERPTokenServiceTestSuite) TestValidateTokenStampsUseAndResolvesCompany() {
	plaintext := "erp_valid_secret"
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.MinCost)
	s.Require().NoError(err)

	s.mockTokenRepo.On("FindActiveTokens", s.ctx).
		Return([]domain.ERPToken{{
			TokenID:   "token-1",
			CompanyID: "company-1",
			TokenHash: string(hash),
		}}, nil).Once()
	s.mockTokenRepo.On("UpdateLastUsed", s.ctx, "token-1", mock.Anything).
		Return(nil).Once()
	s.mockCompanyRepo.On("FindCompanyByID", s.ctx, "company-1").
		Return(&domain.Company{CompanyID: "company-1"}, nil).Once()

	company, err := s.service.ValidateToken(s.ctx, plaintext)

	s.Require().NoError(err)
	s.Require().Equal("company-1", company.CompanyID)
	s.mockTokenRepo.AssertExpectations(s.T())
}

func (s *ERPTokenServiceTestSuite) TestValidateTokenRejectsWrongSecret() {
	hash, err := bcrypt.GenerateFromPassword([]byte("erp_right_secret"), bcrypt.MinCost)
	s.Require().NoError(err)

	s.mockTokenRepo.On("FindActiveTokens", s.ctx).
		Return([]domain.ERPToken{{TokenID: "token-1", TokenHash: string(hash)}}, nil).Once()

	company, err := s.service.ValidateToken(s.ctx, "erp_wrong_secret")

	s.Require().Nil(company)
	s.Require().ErrorIs(err, services.ErrInvalidToken)
	s.mockTokenRepo.AssertNotCalled(s.T(), "UpdateLastUsed", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ERPTokenServiceTestSuite) TestValidateTokenSkipsExpired() {
	plaintext := "erp_expired_secret"
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.MinCost)
	s.Require().NoError(err)
	past := time.Now().Add(-time.Hour)

	s.mockTokenRepo.On("FindActiveTokens", s.ctx).
		Return([]domain.ERPToken{{
			TokenID:   "token-1",
			TokenHash: string(hash),
			ExpiresAt: &past,
		}}, nil).Once()

	company, err := s.service.ValidateToken(s.ctx, plaintext)

	s.Require().Nil(company)
	s.Require().ErrorIs(err, services.ErrInvalidToken)
}
