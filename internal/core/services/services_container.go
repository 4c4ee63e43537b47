package services

import (
	"log/slog"

	portsrepo "github.com/byildiz78/kd-cdc-sub000/internal/core/ports/repositories"
	portssvc "github.com/byildiz78/kd-cdc-sub000/internal/core/ports/services"
)

// NewServiceContainer wires every application service onto the repository
// provider and the POS fetcher.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, fetcher portssvc.POSFetcher, logger *slog.Logger) *portssvc.ServiceContainer {
	versioningSvc := NewVersioningService(repos.VersionRepo, repos.ChangeLogRepo)
	summarySvc := NewSummaryService(repos.ChangeLogRepo, repos.VersionRepo, repos.SummaryRepo)
	snapshotSvc := NewSnapshotService(repos.SnapshotRepo, repos.SummaryRepo, repos.VersionRepo, repos.ChangeLogRepo)
	syncSvc := NewSyncService(repos.CompanyRepo, repos.SyncBatchRepo, fetcher, versioningSvc, summarySvc, snapshotSvc)

	return &portssvc.ServiceContainer{
		Company:    NewCompanyService(repos.CompanyRepo),
		ERPToken:   NewERPTokenService(repos.ERPTokenRepo, repos.CompanyRepo),
		Versioning: versioningSvc,
		Summary:    summarySvc,
		Snapshot:   snapshotSvc,
		Sync:       syncSvc,
		Scheduler:  NewSchedulerService(repos.CompanyRepo, syncSvc, logger),
	}
}
