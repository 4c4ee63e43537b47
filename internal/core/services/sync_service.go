package services

import (
	"context"
	"errors"
	"fmt"
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

// syncService orchestrates one batch end to end:
// fetch -> group -> version -> summarize -> delta -> batch bookkeeping.
type syncService struct {
	companyRepo   portsrepo.CompanyRepositoryFacade
	syncBatchRepo portsrepo.SyncBatchRepositoryFacade
	fetcher       portssvc.POSFetcher
	versioningSvc portssvc.VersioningSvc
	summarySvc    portssvc.SummarySvc
	snapshotSvc   portssvc.SnapshotWriterSvc
}

// NewSyncService creates a new SyncSvc.
func NewSyncService(companyRepo portsrepo.CompanyRepositoryFacade, syncBatchRepo portsrepo.SyncBatchRepositoryFacade, fetcher portssvc.POSFetcher, versioningSvc portssvc.VersioningSvc, summarySvc portssvc.SummarySvc, snapshotSvc portssvc.SnapshotWriterSvc) portssvc.SyncSvc {
	return &syncService{
		companyRepo:   companyRepo,
		syncBatchRepo: syncBatchRepo,
		fetcher:       fetcher,
		versioningSvc: versioningSvc,
		summarySvc:    summarySvc,
		snapshotSvc:   snapshotSvc,
	}
}

// Ensure syncService implements the portssvc.SyncSvc interface
var _ portssvc.SyncSvc = (*syncService)(nil)

func (s *syncService) RunSync(ctx context.Context, companyID string, startDate, endDate time.Time) (*dto.SyncRunResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if endDate.Before(startDate) {
		return nil, apperrors.NewAppError(400, "endDate precedes startDate", apperrors.ErrValidation)
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("company " + companyID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to load company "+companyID, err)
	}

	batch := domain.SyncBatch{
		SyncBatchID: uuid.NewString(),
		CompanyID:   company.CompanyID,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      domain.BatchRunning,
		StartedAt:   time.Now(),
	}
	if err := s.syncBatchRepo.CreateBatch(ctx, batch); err != nil {
		return nil, apperrors.NewAppError(500, "failed to create sync batch", err)
	}

	logger.Info("Sync batch started",
		slog.String("batch_id", batch.SyncBatchID),
		slog.String("company_id", company.CompanyID),
		slog.Time("start_date", startDate),
		slog.Time("end_date", endDate),
	)

	stats, runErr := s.runPipeline(ctx, *company, &batch)

	// The batch row is finalized exactly once, success or failure. Per-order
	// writes already committed stay committed; a re-run of the same window is
	// idempotent because unchanged content hashes short-circuit.
	now := time.Now()
	batch.CompletedAt = &now
	batch.DurationMs = now.Sub(batch.StartedAt).Milliseconds()
	batch.BatchStats = stats
	if runErr != nil {
		batch.Status = domain.BatchFailed
		msg := classifyRunError(runErr)
		details := runErr.Error()
		batch.ErrorMessage = &msg
		batch.ErrorDetails = &details
	} else {
		batch.Status = domain.BatchCompleted
	}
	if err := s.syncBatchRepo.FinalizeBatch(ctx, batch); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Sync batch already finalized", slog.String("batch_id", batch.SyncBatchID))
		} else {
			return nil, apperrors.NewAppError(500, "failed to finalize sync batch", err)
		}
	}

	if runErr != nil {
		logger.Error("Sync batch failed",
			slog.String("batch_id", batch.SyncBatchID),
			slog.String("error", runErr.Error()),
		)
		return nil, runErr
	}

	logger.Info("Sync batch completed",
		slog.String("batch_id", batch.SyncBatchID),
		slog.Int("total", stats.TotalRecords),
		slog.Int("new", stats.NewRecords),
		slog.Int("updated", stats.UpdatedRecords),
		slog.Int("unchanged", stats.UnchangedRecords),
		slog.Int64("duration_ms", batch.DurationMs),
	)
	return &dto.SyncRunResult{
		BatchID:          batch.SyncBatchID,
		TotalRecords:     stats.TotalRecords,
		NewRecords:       stats.NewRecords,
		UpdatedRecords:   stats.UpdatedRecords,
		UnchangedRecords: stats.UnchangedRecords,
		DurationMs:       batch.DurationMs,
	}, nil
}

func (s *syncService) runPipeline(ctx context.Context, company domain.Company, batch *domain.SyncBatch) (domain.BatchStats, error) {
	var stats domain.BatchStats

	lines, err := s.fetcher.FetchTransactions(ctx, company, batch.StartDate, batch.EndDate)
	if err != nil {
		return stats, fmt.Errorf("fetch transactions: %w", err)
	}

	orders := grouping.ByOrder(lines)
	orderKeys := make([]string, 0, len(orders))
	for k := range orders {
		orderKeys = append(orderKeys, k)
	}
	sort.Strings(orderKeys)

	stats.TotalRecords = len(orderKeys)
	for _, orderKey := range orderKeys {
		outcome, err := s.versioningSvc.ProcessOrder(ctx, *batch, orderKey, orders[orderKey])
		if err != nil {
			return stats, fmt.Errorf("process order %s: %w", orderKey, err)
		}
		switch outcome {
		case domain.OutcomeNew:
			stats.NewRecords++
		case domain.OutcomeUpdated:
			stats.UpdatedRecords++
		case domain.OutcomeUnchanged:
			stats.UnchangedRecords++
		}
	}

	bootstrapped, err := s.snapshotSvc.EnsureBootstrapSnapshot(ctx, *batch)
	if err != nil {
		return stats, fmt.Errorf("ensure snapshot: %w", err)
	}

	changes, err := s.summarySvc.MaterializeTouched(ctx, *batch)
	if err != nil {
		return stats, fmt.Errorf("materialize summaries: %w", err)
	}

	// A bootstrap snapshot's watermark is the end of this batch's window, so
	// this batch's own changes are PRE_SNAPSHOT by construction.
	if !bootstrapped {
		if _, err := s.snapshotSvc.ClassifyChanges(ctx, *batch, changes); err != nil {
			return stats, fmt.Errorf("classify deltas: %w", err)
		}
	}

	if watermark := maxLineImportDate(lines); watermark != nil {
		if company.LastImportDate == nil || watermark.After(*company.LastImportDate) {
			if err := s.companyRepo.UpdateLastImportDate(ctx, company.CompanyID, *watermark); err != nil {
				return stats, fmt.Errorf("update last import date: %w", err)
			}
		}
	}

	return stats, nil
}

func maxLineImportDate(lines []domain.TransactionLine) *time.Time {
	var max *time.Time
	for i := range lines {
		d := lines[i].ImportDate
		if max == nil || d.After(*max) {
			max = &d
		}
	}
	return max
}

// classifyRunError produces the short operator-facing message stored on the
// batch row; full detail goes to errorDetails.
func classifyRunError(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrTransientFetch):
		return "POS fetch failed"
	case errors.Is(err, apperrors.ErrDataShape):
		return "POS returned malformed data"
	default:
		return "sync pipeline error"
	}
}
