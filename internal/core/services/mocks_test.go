package services_test

import (
	"context"
	"time"

	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionVersionRepository ---

type MockTransactionVersionRepository struct {
	mock.Mock
}

func (m *MockTransactionVersionRepository) FindLatestByOrderKey(ctx context.Context, companyID, orderKey string) ([]domain.TransactionVersion, error) {
	args := m.Called(ctx, companyID, orderKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionVersion), args.Error(1)
}

func (m *MockTransactionVersionRepository) FindLatestBySummaryKey(ctx context.Context, companyID string, key domain.SummaryKey) ([]domain.TransactionVersion, error) {
	args := m.Called(ctx, companyID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionVersion), args.Error(1)
}

func (m *MockTransactionVersionRepository) MaxImportDateForOrders(ctx context.Context, companyID string, orderKeys []string) (*time.Time, error) {
	args := m.Called(ctx, companyID, orderKeys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockTransactionVersionRepository) ReplaceLatestVersion(ctx context.Context, companyID, orderKey string, newRows []domain.TransactionVersion) error {
	args := m.Called(ctx, companyID, orderKey, newRows)
	return args.Error(0)
}

// --- Mock ChangeLogRepository ---

type MockChangeLogRepository struct {
	mock.Mock
}

func (m *MockChangeLogRepository) FindEntriesByBatchID(ctx context.Context, syncBatchID string) ([]domain.ChangeLogEntry, error) {
	args := m.Called(ctx, syncBatchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChangeLogEntry), args.Error(1)
}

func (m *MockChangeLogRepository) FindEntriesByOrderKey(ctx context.Context, companyID, orderKey string) ([]domain.ChangeLogEntry, error) {
	args := m.Called(ctx, companyID, orderKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChangeLogEntry), args.Error(1)
}

func (m *MockChangeLogRepository) SaveEntry(ctx context.Context, entry domain.ChangeLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// --- Mock SummaryRepository ---

type MockSummaryRepository struct {
	mock.Mock
}

func (m *MockSummaryRepository) FindByKey(ctx context.Context, companyID string, key domain.SummaryKey) (*domain.SummaryRecord, error) {
	args := m.Called(ctx, companyID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SummaryRecord), args.Error(1)
}

func (m *MockSummaryRepository) ListByDateRange(ctx context.Context, companyID string, startDate, endDate time.Time) ([]domain.SummaryRecord, error) {
	args := m.Called(ctx, companyID, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SummaryRecord), args.Error(1)
}

func (m *MockSummaryRepository) CountByDateRange(ctx context.Context, companyID string, startDate, endDate time.Time) (int64, error) {
	args := m.Called(ctx, companyID, startDate, endDate)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSummaryRepository) UpsertSummary(ctx context.Context, record domain.SummaryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// --- Mock SnapshotRepository ---

type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) FindSnapshotByID(ctx context.Context, snapshotID string) (*domain.Snapshot, error) {
	args := m.Called(ctx, snapshotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func (m *MockSnapshotRepository) FindCurrentSnapshot(ctx context.Context, companyID string) (*domain.Snapshot, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func (m *MockSnapshotRepository) SaveSnapshot(ctx context.Context, snapshot domain.Snapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotRepository) UpdateSnapshot(ctx context.Context, snapshot domain.Snapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotRepository) ListDeltas(ctx context.Context, companyID string, startDate, endDate time.Time, onlyUnprocessed bool) ([]domain.DeltaWithOrders, error) {
	args := m.Called(ctx, companyID, startDate, endDate, onlyUnprocessed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeltaWithOrders), args.Error(1)
}

func (m *MockSnapshotRepository) CountDeltasBySnapshot(ctx context.Context, snapshotID string) (int64, error) {
	args := m.Called(ctx, snapshotID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSnapshotRepository) SaveDeltaWithAffectedOrders(ctx context.Context, delta domain.DeltaRecord, orders []domain.AffectedOrder) error {
	args := m.Called(ctx, delta, orders)
	return args.Error(0)
}

func (m *MockSnapshotRepository) MarkDeltasProcessed(ctx context.Context, snapshotID string, processedAt time.Time) (int64, error) {
	args := m.Called(ctx, snapshotID, processedAt)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock SyncBatchRepository ---

type MockSyncBatchRepository struct {
	mock.Mock
}

func (m *MockSyncBatchRepository) FindBatchByID(ctx context.Context, syncBatchID string) (*domain.SyncBatch, error) {
	args := m.Called(ctx, syncBatchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncBatch), args.Error(1)
}

func (m *MockSyncBatchRepository) CreateBatch(ctx context.Context, batch domain.SyncBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockSyncBatchRepository) FinalizeBatch(ctx context.Context, batch domain.SyncBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

// --- Mock CompanyRepository ---

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) ListSchedulableCompanies(ctx context.Context) ([]domain.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) UpdateLastSyncAt(ctx context.Context, companyID string, lastSyncAt time.Time) error {
	args := m.Called(ctx, companyID, lastSyncAt)
	return args.Error(0)
}

func (m *MockCompanyRepository) UpdateLastImportDate(ctx context.Context, companyID string, lastImportDate time.Time) error {
	args := m.Called(ctx, companyID, lastImportDate)
	return args.Error(0)
}

// --- Mock ERPTokenRepository ---

type MockERPTokenRepository struct {
	mock.Mock
}

func (m *MockERPTokenRepository) Create(ctx context.Context, token *domain.ERPToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockERPTokenRepository) FindActiveTokens(ctx context.Context) ([]domain.ERPToken, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ERPToken), args.Error(1)
}

func (m *MockERPTokenRepository) UpdateLastUsed(ctx context.Context, tokenID string, usedAt time.Time) error {
	args := m.Called(ctx, tokenID, usedAt)
	return args.Error(0)
}

func (m *MockERPTokenRepository) Revoke(ctx context.Context, tokenID string, revokedAt time.Time) error {
	args := m.Called(ctx, tokenID, revokedAt)
	return args.Error(0)
}

// --- Mock POSFetcher ---

type MockPOSFetcher struct {
	mock.Mock
}

func (m *MockPOSFetcher) FetchTransactions(ctx context.Context, company domain.Company, startDate, endDate time.Time) ([]domain.TransactionLine, error) {
	args := m.Called(ctx, company, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionLine), args.Error(1)
}
