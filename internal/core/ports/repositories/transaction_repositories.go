package repositories

import (
	"context"
	"time"

	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
)

// TransactionVersionReader defines read operations over versioned order rows.
type TransactionVersionReader interface {
	// FindLatestByOrderKey retrieves the latest version row-set for one order.
	// Returns an empty slice when the order has never been seen.
	FindLatestByOrderKey(ctx context.Context, companyID, orderKey string) ([]domain.TransactionVersion, error)

	// FindLatestBySummaryKey retrieves all latest rows matching the dimensional
	// key, across orders. Backs summary materialization.
	FindLatestBySummaryKey(ctx context.Context, companyID string, key domain.SummaryKey) ([]domain.TransactionVersion, error)

	// MaxImportDateForOrders returns the most recent import date among the
	// latest rows of the given orders. Used for watermark classification.
	MaxImportDateForOrders(ctx context.Context, companyID string, orderKeys []string) (*time.Time, error)
}

// TransactionVersionWriter defines write operations over versioned order rows.
type TransactionVersionWriter interface {
	// ReplaceLatestVersion marks the order's current latest rows is_latest=false
	// and inserts the new row-set, both within one database transaction. The
	// order is never left half-committed.
	ReplaceLatestVersion(ctx context.Context, companyID, orderKey string, newRows []domain.TransactionVersion) error
}

// TransactionVersionRepositoryFacade combines all transaction-version repository interfaces
type TransactionVersionRepositoryFacade interface {
	TransactionVersionReader
	TransactionVersionWriter
}
