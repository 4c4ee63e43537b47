package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/byildiz78/kd-cdc-sub000/internal/apperrors"
	portssvc "github.com/byildiz78/kd-cdc-sub000/internal/core/ports/services"
	"github.com/byildiz78/kd-cdc-sub000/internal/dto"
	"github.com/byildiz78/kd-cdc-sub000/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SyncService ---
type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) RunSync(ctx context.Context, companyID string, startDate, endDate time.Time) (*dto.SyncRunResult, error) {
	args := m.Called(ctx, companyID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SyncRunResult), args.Error(1)
}

var _ portssvc.SyncSvc = (*MockSyncService)(nil)

// --- Test Suite ---
type SyncHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockSyncService    *MockSyncService
	mockCompanyService *MockCompanyService
}

func (suite *SyncHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.mockSyncService = new(MockSyncService)
	suite.mockCompanyService = new(MockCompanyService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterSyncRoutes(v1, suite.mockSyncService, suite.mockCompanyService)
}

func (suite *SyncHandlerTestSuite) postRunSync(req dto.RunSyncRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(req)
	r, _ := http.NewRequest(http.MethodPost, "/api/v1/sync/run", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, r)
	return w
}

func (suite *SyncHandlerTestSuite) TestRunSync_ExplicitWindow() {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	suite.mockSyncService.On("RunSync", mock.Anything, "company-1", start, end).
		Return(&dto.SyncRunResult{BatchID: "batch-1", TotalRecords: 7, NewRecords: 3}, nil).Once()

	w := suite.postRunSync(dto.RunSyncRequest{CompanyID: "company-1", StartDate: &start, EndDate: &end})

	suite.Require().Equal(http.StatusOK, w.Code)
	var result dto.SyncRunResult
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &result))
	suite.Require().Equal("batch-1", result.BatchID)
	suite.Require().Equal(7, result.TotalRecords)
	suite.mockSyncService.AssertExpectations(suite.T())
	// Explicit dates skip the company watermark lookup.
	suite.mockCompanyService.AssertNotCalled(suite.T(), "GetCompanyByID", mock.Anything, mock.Anything)
}

func (suite *SyncHandlerTestSuite) TestRunSync_MissingCompanyID() {
	w := suite.postRunSync(dto.RunSyncRequest{})

	suite.Require().Equal(http.StatusBadRequest, w.Code)
	suite.mockSyncService.AssertNotCalled(suite.T(), "RunSync", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SyncHandlerTestSuite) TestRunSync_UnknownCompanyOnWindowResolution() {
	suite.mockCompanyService.On("GetCompanyByID", mock.Anything, "company-9").
		Return(nil, apperrors.NewNotFoundError("company company-9 not found")).Once()

	w := suite.postRunSync(dto.RunSyncRequest{CompanyID: "company-9"})

	suite.Require().Equal(http.StatusNotFound, w.Code)
	suite.mockSyncService.AssertNotCalled(suite.T(), "RunSync", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SyncHandlerTestSuite) TestRunSync_POSOutageMapsToBadGateway() {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	suite.mockSyncService.On("RunSync", mock.Anything, "company-1", start, end).
		Return(nil, fmt.Errorf("fetch transactions: %w", apperrors.ErrTransientFetch)).Once()

	w := suite.postRunSync(dto.RunSyncRequest{CompanyID: "company-1", StartDate: &start, EndDate: &end})

	suite.Require().Equal(http.StatusBadGateway, w.Code)
	suite.mockSyncService.AssertExpectations(suite.T())
}

func (suite *SyncHandlerTestSuite) TestRunSync_ValidationErrorMapsToBadRequest() {
	start := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	suite.mockSyncService.On("RunSync", mock.Anything, "company-1", start, end).
		Return(nil, apperrors.NewAppError(400, "endDate precedes startDate", apperrors.ErrValidation)).Once()

	w := suite.postRunSync(dto.RunSyncRequest{CompanyID: "company-1", StartDate: &start, EndDate: &end})

	suite.Require().Equal(http.StatusBadRequest, w.Code)
}

func TestSyncHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SyncHandlerTestSuite))
}
