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
	"github.com/byildiz78/kd-cdc-sub000/internal/middleware"
	"github.com/byildiz78/kd-cdc-sub000/internal/utils/hashing"
	"github.com/google/uuid"
)

var (
	ErrEmptyOrder = errors.New("order has no transaction lines")
)

// versioningService implements the order change-detection and versioning engine.
type versioningService struct {
	versionRepo   portsrepo.TransactionVersionRepositoryFacade
	changeLogRepo portsrepo.ChangeLogRepositoryFacade
}

// NewVersioningService creates a new VersioningSvc.
func NewVersioningService(versionRepo portsrepo.TransactionVersionRepositoryFacade, changeLogRepo portsrepo.ChangeLogRepositoryFacade) portssvc.VersioningSvc {
	return &versioningService{
		versionRepo:   versionRepo,
		changeLogRepo: changeLogRepo,
	}
}

// Ensure versioningService implements the portssvc.VersioningSvc interface
var _ portssvc.VersioningSvc = (*versioningService)(nil)

// ProcessOrder versions one order's current line set against its stored latest
// version. Unchanged content short-circuits with no writes, which is what makes
// whole-batch re-runs idempotent.
func (s *versioningService) ProcessOrder(ctx context.Context, batch domain.SyncBatch, orderKey string, lines []domain.TransactionLine) (domain.VersionOutcome, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(lines) == 0 {
		return "", ErrEmptyOrder
	}

	newLines := hashing.SortLines(lines)
	newHash := hashing.ContentHash(newLines)

	existing, err := s.versionRepo.FindLatestByOrderKey(ctx, batch.CompanyID, orderKey)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to load latest version for order "+orderKey, err)
	}

	if len(existing) > 0 && existing[0].ContentHash == newHash {
		return domain.OutcomeUnchanged, nil
	}

	var (
		oldVersion int64
		oldHash    string
		oldLines   []domain.TransactionLine
		oldImport  time.Time
	)
	if len(existing) > 0 {
		oldVersion = existing[0].Version
		oldHash = existing[0].ContentHash
		oldImport = existing[0].ImportDate
		for _, v := range existing {
			oldLines = append(oldLines, v.TransactionLine)
		}
		oldLines = hashing.SortLines(oldLines)
	}
	newVersion := oldVersion + 1

	rows := make([]domain.TransactionVersion, len(newLines))
	for i, l := range newLines {
		rows[i] = domain.TransactionVersion{
			TransactionLine: l,
			CompanyID:       batch.CompanyID,
			Version:         newVersion,
			IsLatest:        true,
			ContentHash:     newHash,
			SyncBatchID:     batch.SyncBatchID,
		}
	}

	// Mark-old-not-latest and insert-new happen in one repository transaction;
	// a failure here leaves the previous version intact.
	if err := s.versionRepo.ReplaceLatestVersion(ctx, batch.CompanyID, orderKey, rows); err != nil {
		return "", apperrors.NewAppError(500, "failed to write version "+orderKey, err)
	}

	changeType, outcome := classifyChange(oldVersion, oldImport, newLines)

	diff, err := json.Marshal(domain.DiffSnapshotPayload{
		SchemaVersion: domain.DiffSnapshotSchemaVersion,
		Before:        oldLines,
		After:         newLines,
	})
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to serialize diff snapshot for order "+orderKey, err)
	}

	entry := domain.ChangeLogEntry{
		ChangeLogID:   uuid.NewString(),
		CompanyID:     batch.CompanyID,
		OrderKey:      orderKey,
		ChangeType:    changeType,
		OldHash:       oldHash,
		NewHash:       newHash,
		OldVersion:    oldVersion,
		NewVersion:    newVersion,
		ChangedFields: diffChangedFields(oldLines, newLines),
		DiffSnapshot:  diff,
		SyncBatchID:   batch.SyncBatchID,
		DetectedAt:    time.Now(),
	}
	if err := s.changeLogRepo.SaveEntry(ctx, entry); err != nil {
		return "", apperrors.NewAppError(500, "failed to save change log for order "+orderKey, err)
	}

	logger.Info("Order versioned",
		slog.String("order_key", orderKey),
		slog.String("change_type", string(changeType)),
		slog.Int64("version", newVersion),
	)

	return outcome, nil
}

// classifyChange decides CREATED / UPDATED / REIMPORTED. REIMPORTED means a
// prior version existed but its import date differs from the incoming rows'
// import date: the source re-sent the order under a new import run.
func classifyChange(oldVersion int64, oldImport time.Time, newLines []domain.TransactionLine) (domain.ChangeType, domain.VersionOutcome) {
	if oldVersion == 0 {
		return domain.ChangeCreated, domain.OutcomeNew
	}

	newImport := maxImportDate(newLines)
	if !sameDay(oldImport, newImport) {
		return domain.ChangeReimported, domain.OutcomeUpdated
	}
	return domain.ChangeUpdated, domain.OutcomeUpdated
}

func maxImportDate(lines []domain.TransactionLine) time.Time {
	var max time.Time
	for _, l := range lines {
		if l.ImportDate.After(max) {
			max = l.ImportDate
		}
	}
	return max
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// diffChangedFields compares old and new line sets field by field. Both sides
// are sorted by TransactionID so positions line up; a changed line count is
// itself reported as a change.
func diffChangedFields(oldLines, newLines []domain.TransactionLine) []string {
	changed := make(map[string]struct{})

	if len(oldLines) != len(newLines) {
		changed["lineCount"] = struct{}{}
	}

	n := len(oldLines)
	if len(newLines) < n {
		n = len(newLines)
	}
	for i := 0; i < n; i++ {
		o, w := oldLines[i], newLines[i]
		if o.TransactionID != w.TransactionID {
			changed["transactionId"] = struct{}{}
			// Positions no longer line up; field comparison would be noise.
			continue
		}
		if !o.SheetDate.Equal(w.SheetDate) {
			changed["sheetDate"] = struct{}{}
		}
		if o.BranchID != w.BranchID {
			changed["branchId"] = struct{}{}
		}
		if o.BranchCode != w.BranchCode {
			changed["branchCode"] = struct{}{}
		}
		if o.AccountingCode != w.AccountingCode {
			changed["accountingCode"] = struct{}{}
		}
		if o.MainAccountingCode != w.MainAccountingCode {
			changed["mainAccountingCode"] = struct{}{}
		}
		if o.IsMainCombo != w.IsMainCombo {
			changed["isMainCombo"] = struct{}{}
		}
		if o.IsExternal != w.IsExternal {
			changed["isExternal"] = struct{}{}
		}
		if !o.TaxPercent.Equal(w.TaxPercent) {
			changed["taxPercent"] = struct{}{}
		}
		if !o.Quantity.Equal(w.Quantity) {
			changed["quantity"] = struct{}{}
		}
		if !o.SubTotal.Equal(w.SubTotal) {
			changed["subTotal"] = struct{}{}
		}
		if !o.TaxTotal.Equal(w.TaxTotal) {
			changed["taxTotal"] = struct{}{}
		}
		if !o.Total.Equal(w.Total) {
			changed["total"] = struct{}{}
		}
	}

	fields := make([]string, 0, len(changed))
	for f := range changed {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
