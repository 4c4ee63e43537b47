package repositories

import (
	"context"
	"time"

	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
)

// SummaryReader defines read operations for materialized summary records.
type SummaryReader interface {
	// FindByKey retrieves the summary record for one dimensional key.
	FindByKey(ctx context.Context, companyID string, key domain.SummaryKey) (*domain.SummaryRecord, error)

	// ListByDateRange retrieves summary records whose sheet date falls in
	// [startDate, endDate], ordered by sheet date then branch code.
	ListByDateRange(ctx context.Context, companyID string, startDate, endDate time.Time) ([]domain.SummaryRecord, error)

	// CountByDateRange counts summary records in the window. Used to refresh a
	// snapshot's recordCount from live truth.
	CountByDateRange(ctx context.Context, companyID string, startDate, endDate time.Time) (int64, error)
}

// SummaryWriter defines write operations for materialized summary records.
type SummaryWriter interface {
	// UpsertSummary inserts or replaces the record for its dimensional key.
	UpsertSummary(ctx context.Context, record domain.SummaryRecord) error
}

// SummaryRepositoryFacade combines all summary repository interfaces
type SummaryRepositoryFacade interface {
	SummaryReader
	SummaryWriter
}
