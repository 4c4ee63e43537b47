package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/byildiz78/kd-cdc-sub000/internal/apperrors"
	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	portssvc "github.com/byildiz78/kd-cdc-sub000/internal/core/ports/services"
	"github.com/byildiz78/kd-cdc-sub000/internal/core/services"
	"github.com/byildiz78/kd-cdc-sub000/internal/dto"
	"github.com/byildiz78/kd-cdc-sub000/internal/handlers"
	"github.com/byildiz78/kd-cdc-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SnapshotService ---
type MockSnapshotService struct {
	mock.Mock
}

func (m *MockSnapshotService) EnsureBootstrapSnapshot(ctx context.Context, batch domain.SyncBatch) (bool, error) {
	args := m.Called(ctx, batch)
	return args.Bool(0), args.Error(1)
}
func (m *MockSnapshotService) ClassifyChanges(ctx context.Context, batch domain.SyncBatch, changes []domain.SummaryChange) (int, error) {
	args := m.Called(ctx, batch, changes)
	return args.Int(0), args.Error(1)
}
func (m *MockSnapshotService) GetCurrentSnapshot(ctx context.Context, companyID string) (*domain.Snapshot, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}
func (m *MockSnapshotService) ListSummaries(ctx context.Context, companyID string, startDate, endDate time.Time) ([]domain.SummaryRecord, error) {
	args := m.Called(ctx, companyID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SummaryRecord), args.Error(1)
}
func (m *MockSnapshotService) ListDeltas(ctx context.Context, companyID string, startDate, endDate time.Time, onlyUnprocessed bool) ([]domain.DeltaWithOrders, error) {
	args := m.Called(ctx, companyID, startDate, endDate, onlyUnprocessed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeltaWithOrders), args.Error(1)
}
func (m *MockSnapshotService) ConfirmPull(ctx context.Context, companyID string, req dto.ConfirmPullRequest) (*dto.ConfirmPullResponse, error) {
	args := m.Called(ctx, companyID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ConfirmPullResponse), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.SnapshotSvcFacade = (*MockSnapshotService)(nil)

// --- Mock ERPTokenService ---
type MockERPTokenService struct {
	mock.Mock
}

func (m *MockERPTokenService) CreateToken(ctx context.Context, req dto.CreateERPTokenRequest) (*dto.CreateERPTokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CreateERPTokenResponse), args.Error(1)
}
func (m *MockERPTokenService) ValidateToken(ctx context.Context, tokenString string) (*domain.Company, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

var _ portssvc.ERPTokenSvc = (*MockERPTokenService)(nil)

// --- Mock CompanyService ---
type MockCompanyService struct {
	mock.Mock
}

func (m *MockCompanyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

var _ portssvc.CompanySvc = (*MockCompanyService)(nil)

// --- Test Suite ---
type ERPHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockSnapshotService *MockSnapshotService
	mockTokenService    *MockERPTokenService
	mockCompanyService  *MockCompanyService
	jwtSecret           string
	company             *domain.Company
}

// generateTestToken creates a company-scoped JWT for testing.
func (suite *ERPHandlerTestSuite) generateTestToken(companyID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "cdc-test",
		Subject:   companyID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ERPHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.company = &domain.Company{CompanyID: "company-1", Name: "Demo Restaurants"}

	suite.mockSnapshotService = new(MockSnapshotService)
	suite.mockTokenService = new(MockERPTokenService)
	suite.mockCompanyService = new(MockCompanyService)

	// JWT fallback path: opaque token validation fails, JWT resolves the company.
	suite.mockTokenService.On("ValidateToken", mock.Anything, mock.Anything).
		Return(nil, services.ErrInvalidToken).Maybe()
	suite.mockCompanyService.On("GetCompanyByID", mock.Anything, "company-1").
		Return(suite.company, nil).Maybe()

	erpGroup := suite.router.Group("/api/v1",
		middleware.ERPAuthMiddleware(suite.mockTokenService, suite.mockCompanyService, suite.jwtSecret),
	)
	handlers.RegisterERPRoutes(erpGroup, suite.mockSnapshotService)
}

func (suite *ERPHandlerTestSuite) doRequest(method, url string, body []byte) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("company-1"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ERPHandlerTestSuite) TestGetCurrentSnapshot_Success() {
	snapshot := &domain.Snapshot{
		SnapshotID:   "snapshot-1",
		CompanyID:    "company-1",
		SnapshotDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		RecordCount:  12,
		ERPStatus:    domain.ERPPending,
	}
	suite.mockSnapshotService.On("GetCurrentSnapshot", mock.Anything, "company-1").
		Return(snapshot, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/erp/snapshot/current", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.SnapshotResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Equal("snapshot-1", resp.SnapshotID)
	suite.Require().Equal("PENDING", resp.ERPStatus)
	suite.mockSnapshotService.AssertExpectations(suite.T())
}

func (suite *ERPHandlerTestSuite) TestGetCurrentSnapshot_NotFound() {
	suite.mockSnapshotService.On("GetCurrentSnapshot", mock.Anything, "company-1").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/erp/snapshot/current", nil)

	suite.Require().Equal(http.StatusNotFound, w.Code)
}

func (suite *ERPHandlerTestSuite) TestGetCurrentSnapshot_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/erp/snapshot/current", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Require().Equal(http.StatusUnauthorized, w.Code)
}

func (suite *ERPHandlerTestSuite) TestListSummaries_Success() {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	suite.mockSnapshotService.On("ListSummaries", mock.Anything, "company-1", start, end).
		Return([]domain.SummaryRecord{{SummaryID: "summary-1", CompanyID: "company-1"}}, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/erp/summary?startDate=2026-08-01&endDate=2026-08-02", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ListSummariesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Summaries, 1)
	suite.mockSnapshotService.AssertExpectations(suite.T())
}

func (suite *ERPHandlerTestSuite) TestListSummaries_InvalidRange() {
	w := suite.doRequest(http.MethodGet, "/api/v1/erp/summary?startDate=2026-08-02&endDate=2026-08-01", nil)

	suite.Require().Equal(http.StatusBadRequest, w.Code)
	suite.mockSnapshotService.AssertNotCalled(suite.T(), "ListSummaries", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ERPHandlerTestSuite) TestListDeltas_OnlyUnprocessed() {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	suite.mockSnapshotService.On("ListDeltas", mock.Anything, "company-1", start, end, true).
		Return([]domain.DeltaWithOrders{}, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/erp/deltas?startDate=2026-08-01&endDate=2026-08-02&onlyUnprocessed=true", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	suite.mockSnapshotService.AssertExpectations(suite.T())
}

func (suite *ERPHandlerTestSuite) TestConfirmPull_Success() {
	nextID := "snapshot-2"
	suite.mockSnapshotService.On("ConfirmPull", mock.Anything, "company-1", mock.MatchedBy(func(req dto.ConfirmPullRequest) bool {
		return req.SnapshotID == "snapshot-1" && req.Status == dto.PullStatusSuccess
	})).Return(&dto.ConfirmPullResponse{Status: "CONFIRMED", NextSnapshotID: &nextID}, nil).Once()

	body, _ := json.Marshal(dto.ConfirmPullRequest{SnapshotID: "snapshot-1", Status: dto.PullStatusSuccess})
	w := suite.doRequest(http.MethodPost, "/api/v1/erp/confirm-pull", body)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ConfirmPullResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Equal("CONFIRMED", resp.Status)
	suite.Require().NotNil(resp.NextSnapshotID)
	suite.mockSnapshotService.AssertExpectations(suite.T())
}

func (suite *ERPHandlerTestSuite) TestConfirmPull_Conflict() {
	suite.mockSnapshotService.On("ConfirmPull", mock.Anything, "company-1", mock.Anything).
		Return(nil, apperrors.NewAppError(409, "snapshot snapshot-1 already confirmed", apperrors.ErrConflict)).Once()

	body, _ := json.Marshal(dto.ConfirmPullRequest{SnapshotID: "snapshot-1", Status: dto.PullStatusSuccess})
	w := suite.doRequest(http.MethodPost, "/api/v1/erp/confirm-pull", body)

	suite.Require().Equal(http.StatusConflict, w.Code)
}

func (suite *ERPHandlerTestSuite) TestConfirmPull_ForeignCompany() {
	suite.mockSnapshotService.On("ConfirmPull", mock.Anything, "company-1", mock.Anything).
		Return(nil, apperrors.NewAppError(403, "snapshot belongs to a different company", apperrors.ErrForbidden)).Once()

	body, _ := json.Marshal(dto.ConfirmPullRequest{SnapshotID: "snapshot-1", Status: dto.PullStatusSuccess})
	w := suite.doRequest(http.MethodPost, "/api/v1/erp/confirm-pull", body)

	suite.Require().Equal(http.StatusForbidden, w.Code)
}

func (suite *ERPHandlerTestSuite) TestConfirmPull_BindingError() {
	body := []byte(`{"status": "SUCCESS"}`) // snapshotId missing
	w := suite.doRequest(http.MethodPost, "/api/v1/erp/confirm-pull", body)

	suite.Require().Equal(http.StatusBadRequest, w.Code)
	suite.mockSnapshotService.AssertNotCalled(suite.T(), "ConfirmPull", mock.Anything, mock.Anything, mock.Anything)
}

func TestERPHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ERPHandlerTestSuite))
}
