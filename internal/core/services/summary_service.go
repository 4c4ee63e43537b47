package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/byildiz78/kd-cdc-sub000/internal/apperrors"
	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	portsrepo "github.com/byildiz78/kd-cdc-sub000/internal/core/ports/repositories"
	portssvc "github.com/byildiz78/kd-cdc-sub000/internal/core/ports/services"
	"github.com/byildiz78/kd-cdc-sub000/internal/middleware"
	"github.com/byildiz78/kd-cdc-sub000/internal/utils/grouping"
	"github.com/byildiz78/kd-cdc-sub000/internal/utils/hashing"
	"github.com/google/uuid"
)

// summaryService recomputes dimensional aggregates for the keys a batch
// touched, keeping recomputation proportional to the size of the change.
type summaryService struct {
	changeLogRepo portsrepo.ChangeLogRepositoryFacade
	versionRepo   portsrepo.TransactionVersionRepositoryFacade
	summaryRepo   portsrepo.SummaryRepositoryFacade
}

// NewSummaryService creates a new SummarySvc.
func NewSummaryService(changeLogRepo portsrepo.ChangeLogRepositoryFacade, versionRepo portsrepo.TransactionVersionRepositoryFacade, summaryRepo portsrepo.SummaryRepositoryFacade) portssvc.SummarySvc {
	return &summaryService{
		changeLogRepo: changeLogRepo,
		versionRepo:   versionRepo,
		summaryRepo:   summaryRepo,
	}
}

// Ensure summaryService implements the portssvc.SummarySvc interface
var _ portssvc.SummarySvc = (*summaryService)(nil)

func (s *summaryService) MaterializeTouched(ctx context.Context, batch domain.SyncBatch) ([]domain.SummaryChange, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entries, err := s.changeLogRepo.FindEntriesByBatchID(ctx, batch.SyncBatchID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load change log for batch "+batch.SyncBatchID, err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	touched, err := touchedKeys(entries)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var changes []domain.SummaryChange
	for _, key := range touched {
		latest, err := s.versionRepo.FindLatestBySummaryKey(ctx, batch.CompanyID, key)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to load latest rows for summary key", err)
		}

		lines := make([]domain.TransactionLine, len(latest))
		for i, v := range latest {
			lines[i] = v.TransactionLine
		}
		newMeasures := grouping.Aggregate(lines)
		newHash := hashing.MeasureHash(newMeasures)

		existing, err := s.summaryRepo.FindByKey(ctx, batch.CompanyID, key)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(500, "failed to load summary record", err)
		}

		if existing != nil && existing.DataHash == newHash {
			// Touched but numerically unchanged, e.g. a field diff that does
			// not affect measures under this key.
			continue
		}

		record := domain.SummaryRecord{
			SummaryID:       uuid.NewString(),
			CompanyID:       batch.CompanyID,
			SummaryKey:      key,
			Measures:        newMeasures,
			Version:         1,
			DataHash:        newHash,
			LastModified:    now,
			LastSyncBatchID: batch.SyncBatchID,
		}
		change := domain.SummaryChange{
			Key:         key,
			ChangeType:  domain.SummaryCreated,
			OldMeasures: domain.ZeroMeasures(),
			NewMeasures: newMeasures,
		}
		if existing != nil {
			record.SummaryID = existing.SummaryID
			record.Version = existing.Version + 1
			change.ChangeType = domain.SummaryUpdated
			change.OldMeasures = existing.Measures
		}
		change.NewVersion = record.Version

		if err := s.summaryRepo.UpsertSummary(ctx, record); err != nil {
			return nil, apperrors.NewAppError(500, "failed to upsert summary record", err)
		}
		changes = append(changes, change)
	}

	logger.Info("Summaries materialized",
		slog.String("batch_id", batch.SyncBatchID),
		slog.Int("touched_keys", len(touched)),
		slog.Int("changed_keys", len(changes)),
	)

	return changes, nil
}

// touchedKeys derives the dimensional keys affected by a batch from its
// change-log diff snapshots. Both before and after line sets contribute: an
// order whose lines moved to a different key must trigger a recompute of the
// old key as well.
func touchedKeys(entries []domain.ChangeLogEntry) ([]domain.SummaryKey, error) {
	seen := make(map[domain.SummaryKey]struct{})
	var keys []domain.SummaryKey

	add := func(lines []domain.TransactionLine) {
		for _, l := range lines {
			key := l.Key()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}

	for _, e := range entries {
		var payload domain.DiffSnapshotPayload
		if err := json.Unmarshal(e.DiffSnapshot, &payload); err != nil {
			return nil, apperrors.NewAppError(500, "failed to decode diff snapshot for order "+e.OrderKey, err)
		}
		add(payload.Before)
		add(payload.After)
	}
	return keys, nil
}
