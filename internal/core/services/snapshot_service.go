package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/byildiz78/kd-cdc-sub000/internal/apperrors"
	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	portsrepo "github.com/byildiz78/kd-cdc-sub000/internal/core/ports/repositories"
	portssvc "github.com/byildiz78/kd-cdc-sub000/internal/core/ports/services"
	"github.com/byildiz78/kd-cdc-sub000/internal/dto"
	"github.com/byildiz78/kd-cdc-sub000/internal/middleware"
	"github.com/byildiz78/kd-cdc-sub000/internal/utils/grouping"
	"github.com/google/uuid"
)

var (
	ErrNoCurrentSnapshot = errors.New("company has no current snapshot")
	ErrIllegalTransition = errors.New("illegal snapshot status transition")
	ErrUnknownPullStatus = errors.New("unknown pull status")
)

// snapshotService maintains the ERP consumption watermark, classifies
// aggregate changes against it and implements the confirm/retry protocol.
type snapshotService struct {
	snapshotRepo  portsrepo.SnapshotRepositoryFacade
	summaryRepo   portsrepo.SummaryRepositoryFacade
	versionRepo   portsrepo.TransactionVersionRepositoryFacade
	changeLogRepo portsrepo.ChangeLogRepositoryFacade
}

// NewSnapshotService creates a new SnapshotSvcFacade.
func NewSnapshotService(snapshotRepo portsrepo.SnapshotRepositoryFacade, summaryRepo portsrepo.SummaryRepositoryFacade, versionRepo portsrepo.TransactionVersionRepositoryFacade, changeLogRepo portsrepo.ChangeLogRepositoryFacade) portssvc.SnapshotSvcFacade {
	return &snapshotService{
		snapshotRepo:  snapshotRepo,
		summaryRepo:   summaryRepo,
		versionRepo:   versionRepo,
		changeLogRepo: changeLogRepo,
	}
}

// Ensure snapshotService implements the portssvc.SnapshotSvcFacade interface
var _ portssvc.SnapshotSvcFacade = (*snapshotService)(nil)

func (s *snapshotService) EnsureBootstrapSnapshot(ctx context.Context, batch domain.SyncBatch) (bool, error) {
	_, err := s.snapshotRepo.FindCurrentSnapshot(ctx, batch.CompanyID)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return false, apperrors.NewAppError(500, "failed to load current snapshot", err)
	}

	now := time.Now()
	snapshot := domain.Snapshot{
		SnapshotID:    uuid.NewString(),
		CompanyID:     batch.CompanyID,
		SnapshotDate:  batch.EndDate,
		DataStartDate: batch.StartDate,
		DataEndDate:   batch.EndDate,
		ERPStatus:     domain.ERPPending,
		CreatedAt:     now,
	}
	if err := s.snapshotRepo.SaveSnapshot(ctx, snapshot); err != nil {
		return false, apperrors.NewAppError(500, "failed to create bootstrap snapshot", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Bootstrap snapshot created",
		slog.String("company_id", batch.CompanyID),
		slog.String("snapshot_id", snapshot.SnapshotID),
	)
	return true, nil
}

// ClassifyChanges applies the watermark rule to every changed summary key.
// Changes whose latest contributing import is at or before the snapshot date
// are absorbed silently into the summary (PRE_SNAPSHOT): they are revisions
// inside a period the ERP has not pulled yet. Note this also means an ERP that
// already confirmed a pre-snapshot state is never notified of late-arriving
// revisions to it; the summary quietly reflects them on the next pull.
func (s *snapshotService) ClassifyChanges(ctx context.Context, batch domain.SyncBatch, changes []domain.SummaryChange) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(changes) == 0 {
		return 0, nil
	}

	snapshot, err := s.snapshotRepo.FindCurrentSnapshot(ctx, batch.CompanyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, ErrNoCurrentSnapshot
		}
		return 0, apperrors.NewAppError(500, "failed to load current snapshot", err)
	}

	// Per-order before/after context from this batch's change log, keyed by
	// order. Only orders that changed in this batch can have driven a summary
	// change.
	entries, err := s.changeLogRepo.FindEntriesByBatchID(ctx, batch.SyncBatchID)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to load change log for batch "+batch.SyncBatchID, err)
	}
	changedOrders := make(map[string]domain.ChangeLogEntry, len(entries))
	afterLines := make(map[string][]domain.TransactionLine, len(entries))
	for _, e := range entries {
		var payload domain.DiffSnapshotPayload
		if err := json.Unmarshal(e.DiffSnapshot, &payload); err != nil {
			return 0, apperrors.NewAppError(500, "failed to decode diff snapshot for order "+e.OrderKey, err)
		}
		changedOrders[e.OrderKey] = e
		afterLines[e.OrderKey] = payload.After
	}

	created := 0
	now := time.Now()
	for _, change := range changes {
		contributors := contributingOrders(changedOrders, afterLines, change.Key)
		if len(contributors) == 0 {
			// The change came purely from lines leaving this key; attribute it
			// to the orders whose before-lines matched the key.
			contributors = formerContributors(changedOrders, change.Key)
		}
		if len(contributors) == 0 {
			continue
		}

		latestImport, err := s.versionRepo.MaxImportDateForOrders(ctx, batch.CompanyID, contributors)
		if err != nil {
			return 0, apperrors.NewAppError(500, "failed to resolve latest import for delta classification", err)
		}
		if latestImport == nil || !latestImport.After(snapshot.SnapshotDate) {
			// PRE_SNAPSHOT: historical label only, never persisted.
			continue
		}

		delta := domain.DeltaRecord{
			DeltaID:     uuid.NewString(),
			CompanyID:   batch.CompanyID,
			SummaryKey:  change.Key,
			ChangeType:  domain.DeltaChangeType(change.ChangeType),
			OldMeasures: change.OldMeasures,
			NewMeasures: change.NewMeasures,
			DeltaType:   domain.DeltaPostSnapshot,
			SnapshotID:  snapshot.SnapshotID,
			SyncBatchID: batch.SyncBatchID,
			CreatedAt:   now,
		}

		orders := make([]domain.AffectedOrder, 0, len(contributors))
		for _, orderKey := range contributors {
			entry := changedOrders[orderKey]
			orders = append(orders, domain.AffectedOrder{
				AffectedOrderID: uuid.NewString(),
				DeltaID:         delta.DeltaID,
				OrderKey:        orderKey,
				Contribution:    grouping.Contribution(afterLines[orderKey], change.Key),
				OldVersion:      entry.OldVersion,
				NewVersion:      entry.NewVersion,
				OldHash:         entry.OldHash,
				NewHash:         entry.NewHash,
			})
		}

		if err := s.snapshotRepo.SaveDeltaWithAffectedOrders(ctx, delta, orders); err != nil {
			return 0, apperrors.NewAppError(500, "failed to save delta record", err)
		}
		created++
	}

	if created > 0 {
		deltaCount, err := s.snapshotRepo.CountDeltasBySnapshot(ctx, snapshot.SnapshotID)
		if err != nil {
			return 0, apperrors.NewAppError(500, "failed to count deltas for snapshot "+snapshot.SnapshotID, err)
		}
		snapshot.DeltaCount = deltaCount
		if err := s.snapshotRepo.UpdateSnapshot(ctx, *snapshot); err != nil {
			return 0, apperrors.NewAppError(500, "failed to update snapshot delta count", err)
		}
	}

	logger.Info("Delta classification done",
		slog.String("batch_id", batch.SyncBatchID),
		slog.Int("changed_keys", len(changes)),
		slog.Int("deltas_created", created),
	)
	return created, nil
}

// contributingOrders returns the changed orders whose after-lines contribute
// to the given summary key, in deterministic order.
func contributingOrders(entries map[string]domain.ChangeLogEntry, afterLines map[string][]domain.TransactionLine, key domain.SummaryKey) []string {
	var orders []string
	for orderKey := range entries {
		for _, l := range afterLines[orderKey] {
			if l.Key() == key {
				orders = append(orders, orderKey)
				break
			}
		}
	}
	sort.Strings(orders)
	return orders
}

// formerContributors returns changed orders whose before-lines matched the
// key, for changes caused by contributions moving away from a key.
func formerContributors(entries map[string]domain.ChangeLogEntry, key domain.SummaryKey) []string {
	var orders []string
	for orderKey, e := range entries {
		var payload domain.DiffSnapshotPayload
		if err := json.Unmarshal(e.DiffSnapshot, &payload); err != nil {
			continue
		}
		for _, l := range payload.Before {
			if l.Key() == key {
				orders = append(orders, orderKey)
				break
			}
		}
	}
	sort.Strings(orders)
	return orders
}

func (s *snapshotService) GetCurrentSnapshot(ctx context.Context, companyID string) (*domain.Snapshot, error) {
	snapshot, err := s.snapshotRepo.FindCurrentSnapshot(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *snapshotService) ListSummaries(ctx context.Context, companyID string, startDate, endDate time.Time) ([]domain.SummaryRecord, error) {
	return s.summaryRepo.ListByDateRange(ctx, companyID, startDate, endDate)
}

func (s *snapshotService) ListDeltas(ctx context.Context, companyID string, startDate, endDate time.Time, onlyUnprocessed bool) ([]domain.DeltaWithOrders, error) {
	return s.snapshotRepo.ListDeltas(ctx, companyID, startDate, endDate, onlyUnprocessed)
}

// ConfirmPull processes the ERP's acknowledgement for a snapshot pull.
func (s *snapshotService) ConfirmPull(ctx context.Context, companyID string, req dto.ConfirmPullRequest) (*dto.ConfirmPullResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	snapshot, err := s.snapshotRepo.FindSnapshotByID(ctx, req.SnapshotID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("snapshot " + req.SnapshotID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to load snapshot "+req.SnapshotID, err)
	}

	if snapshot.CompanyID != companyID {
		return nil, apperrors.NewAppError(403, "snapshot belongs to a different company", apperrors.ErrForbidden)
	}

	// Idempotency guard: a confirmed snapshot is terminal, so a duplicate
	// confirmation must not create a second successor.
	if snapshot.ERPStatus == domain.ERPConfirmed {
		return nil, apperrors.NewAppError(409, "snapshot "+req.SnapshotID+" already confirmed", apperrors.ErrConflict)
	}

	now := time.Now()
	switch req.Status {
	case dto.PullStatusSuccess:
		if !snapshot.ERPStatus.CanTransitionTo(domain.ERPConfirmed) {
			return nil, ErrIllegalTransition
		}

		recordCount, err := s.summaryRepo.CountByDateRange(ctx, companyID, snapshot.DataStartDate, snapshot.DataEndDate)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to refresh record count", err)
		}
		deltaCount, err := s.snapshotRepo.CountDeltasBySnapshot(ctx, snapshot.SnapshotID)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to refresh delta count", err)
		}

		snapshot.ERPStatus = domain.ERPConfirmed
		snapshot.ERPConfirmedAt = &now
		if snapshot.ERPPulledAt == nil {
			snapshot.ERPPulledAt = &now
		}
		snapshot.RecordCount = recordCount
		snapshot.DeltaCount = deltaCount
		snapshot.ERPErrorMessage = nil
		if err := s.snapshotRepo.UpdateSnapshot(ctx, *snapshot); err != nil {
			return nil, apperrors.NewAppError(500, "failed to confirm snapshot "+snapshot.SnapshotID, err)
		}

		if _, err := s.snapshotRepo.MarkDeltasProcessed(ctx, snapshot.SnapshotID, now); err != nil {
			return nil, apperrors.NewAppError(500, "failed to mark deltas processed", err)
		}

		// The successor becomes the new watermark: subsequent changes are
		// classified against "now" over the same data window.
		successor := domain.Snapshot{
			SnapshotID:    uuid.NewString(),
			CompanyID:     companyID,
			SnapshotDate:  now,
			DataStartDate: snapshot.DataStartDate,
			DataEndDate:   snapshot.DataEndDate,
			ERPStatus:     domain.ERPPending,
			CreatedAt:     now,
		}
		if err := s.snapshotRepo.SaveSnapshot(ctx, successor); err != nil {
			return nil, apperrors.NewAppError(500, "failed to create successor snapshot", err)
		}

		logger.Info("Snapshot confirmed",
			slog.String("snapshot_id", snapshot.SnapshotID),
			slog.String("next_snapshot_id", successor.SnapshotID),
		)
		return &dto.ConfirmPullResponse{
			Status:         string(domain.ERPConfirmed),
			NextSnapshotID: &successor.SnapshotID,
		}, nil

	case dto.PullStatusFailed:
		if !snapshot.ERPStatus.CanTransitionTo(domain.ERPFailed) {
			return nil, ErrIllegalTransition
		}

		// Underlying data stays untouched so a retry re-pulls identical
		// summary/delta state.
		snapshot.ERPStatus = domain.ERPFailed
		snapshot.ERPErrorMessage = req.ErrorMessage
		if snapshot.ERPPulledAt == nil {
			snapshot.ERPPulledAt = &now
		}
		if err := s.snapshotRepo.UpdateSnapshot(ctx, *snapshot); err != nil {
			return nil, apperrors.NewAppError(500, "failed to record snapshot failure", err)
		}

		logger.Warn("Snapshot pull failed", slog.String("snapshot_id", snapshot.SnapshotID))
		return &dto.ConfirmPullResponse{Status: string(domain.ERPFailed)}, nil

	default:
		return nil, ErrUnknownPullStatus
	}
}
