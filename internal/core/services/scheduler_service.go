package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	portsrepo "github.com/byildiz78/kd-cdc-sub000/internal/core/ports/repositories"
	portssvc "github.com/byildiz78/kd-cdc-sub000/internal/core/ports/services"
	"github.com/byildiz78/kd-cdc-sub000/internal/middleware"
)

const schedulerTickInterval = 60 * time.Second

// schedulerService evaluates every schedulable company once per tick and
// dispatches due syncs on their own goroutines. A company is never dispatched
// while a previous dispatch for it is still in flight.
type schedulerService struct {
	companyRepo portsrepo.CompanyRepositoryFacade
	syncSvc     portssvc.SyncSvc
	logger      *slog.Logger

	mu       sync.Mutex
	inFlight map[string]bool
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSchedulerService creates a new SchedulerSvc.
func NewSchedulerService(companyRepo portsrepo.CompanyRepositoryFacade, syncSvc portssvc.SyncSvc, logger *slog.Logger) portssvc.SchedulerSvc {
	return &schedulerService{
		companyRepo: companyRepo,
		syncSvc:     syncSvc,
		logger:      logger,
		inFlight:    make(map[string]bool),
		stop:        make(chan struct{}),
	}
}

// Ensure schedulerService implements the portssvc.SchedulerSvc interface
var _ portssvc.SchedulerSvc = (*schedulerService)(nil)

func (s *schedulerService) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(schedulerTickInterval)
		defer ticker.Stop()

		s.logger.Info("Scheduler started", slog.Duration("tick", schedulerTickInterval))
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			case now := <-ticker.C:
				s.evaluate(ctx, now)
			}
		}
	}()
}

func (s *schedulerService) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	s.wg.Wait()
}

func (s *schedulerService) evaluate(ctx context.Context, now time.Time) {
	companies, err := s.companyRepo.ListSchedulableCompanies(ctx)
	if err != nil {
		s.logger.Error("Scheduler failed to list companies", slog.String("error", err.Error()))
		return
	}

	for _, company := range companies {
		if !IsSyncDue(company, now) {
			continue
		}
		s.dispatch(ctx, company, now)
	}
}

func (s *schedulerService) dispatch(ctx context.Context, company domain.Company, now time.Time) {
	s.mu.Lock()
	if s.inFlight[company.CompanyID] {
		s.mu.Unlock()
		return
	}
	s.inFlight[company.CompanyID] = true
	s.mu.Unlock()

	// Stamped before the sync runs so a long-running batch does not make the
	// company due again on the next tick.
	if err := s.companyRepo.UpdateLastSyncAt(ctx, company.CompanyID, now); err != nil {
		s.logger.Error("Scheduler failed to stamp last sync",
			slog.String("company_id", company.CompanyID),
			slog.String("error", err.Error()),
		)
		s.clearInFlight(company.CompanyID)
		return
	}

	startDate, endDate := SyncWindow(company, now)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.clearInFlight(company.CompanyID)

		runCtx := middleware.ContextWithLogger(ctx, s.logger.With(
			slog.String("company_id", company.CompanyID),
			slog.String("trigger", "scheduler"),
		))
		if _, err := s.syncSvc.RunSync(runCtx, company.CompanyID, startDate, endDate); err != nil {
			s.logger.Error("Scheduled sync failed",
				slog.String("company_id", company.CompanyID),
				slog.String("error", err.Error()),
			)
		}
	}()
}

func (s *schedulerService) clearInFlight(companyID string) {
	s.mu.Lock()
	delete(s.inFlight, companyID)
	s.mu.Unlock()
}

// IsSyncDue evaluates the company's cadence rule at the given instant.
func IsSyncDue(company domain.Company, now time.Time) bool {
	if !company.IsActive || !company.SyncEnabled {
		return false
	}

	switch company.SyncType {
	case domain.SyncInterval:
		if company.SyncIntervalMinutes <= 0 {
			return false
		}
		if company.LastSyncAt == nil {
			return true
		}
		return now.Sub(*company.LastSyncAt) >= time.Duration(company.SyncIntervalMinutes)*time.Minute

	case domain.SyncDaily:
		if !timeOfDayReached(company, now) {
			return false
		}
		return company.LastSyncAt == nil || !sameCalendarDay(*company.LastSyncAt, now)

	case domain.SyncWeekly:
		if now.Weekday() != company.SyncDay || !timeOfDayReached(company, now) {
			return false
		}
		return company.LastSyncAt == nil || !sameISOWeek(*company.LastSyncAt, now)
	}
	return false
}

// SyncWindow derives the date range for a scheduled sync: incremental from the
// company's import-date high-water mark, or yesterday as a full day on the
// first ever run.
func SyncWindow(company domain.Company, now time.Time) (time.Time, time.Time) {
	if company.LastImportDate != nil {
		return *company.LastImportDate, now
	}
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return startOfToday.AddDate(0, 0, -1), startOfToday
}

func timeOfDayReached(company domain.Company, now time.Time) bool {
	return now.Hour()*60+now.Minute() >= company.SyncHour*60+company.SyncMinute
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sameISOWeek(a, b time.Time) bool {
	ay, aw := a.ISOWeek()
	by, bw := b.ISOWeek()
	return ay == by && aw == bw
}
