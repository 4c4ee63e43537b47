package pgsql

import (
	portsrepo "github.com/byildiz78/kd-cdc-sub000/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every repository onto the shared pgx pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		CompanyRepo:   NewCompanyRepository(pool),
		ERPTokenRepo:  NewERPTokenRepository(pool),
		VersionRepo:   NewTransactionVersionRepository(pool),
		ChangeLogRepo: NewChangeLogRepository(pool),
		SummaryRepo:   NewSummaryRepository(pool),
		SnapshotRepo:  NewSnapshotRepository(pool),
		SyncBatchRepo: NewSyncBatchRepository(pool),
	}
}
