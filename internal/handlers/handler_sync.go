package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/byildiz78/kd-cdc-sub000/internal/apperrors"
	portssvc "github.com/byildiz78/kd-cdc-sub000/internal/core/ports/services"
	"github.com/byildiz78/kd-cdc-sub000/internal/dto"
	"github.com/byildiz78/kd-cdc-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// syncHandler handles HTTP requests that trigger sync batches.
type syncHandler struct {
	syncService    portssvc.SyncSvc
	companyService portssvc.CompanySvc
}

// newSyncHandler creates a new syncHandler.
func newSyncHandler(ss portssvc.SyncSvc, cs portssvc.CompanySvc) *syncHandler {
	return &syncHandler{
		syncService:    ss,
		companyService: cs,
	}
}

// RegisterSyncRoutes registers routes related to sync batches.
func RegisterSyncRoutes(rg *gin.RouterGroup, syncService portssvc.SyncSvc, companyService portssvc.CompanySvc) {
	h := newSyncHandler(syncService, companyService)

	sync := rg.Group("/sync")
	{
		sync.POST("/run", h.runSync)
	}
}

// runSync godoc
// @Summary Trigger a sync batch
// @Description Runs the full sync pipeline for a company over a date range. When dates are omitted, the incremental window is derived from the company's import-date watermark.
// @Tags sync
// @Accept  json
// @Produce  json
// @Param   request body dto.RunSyncRequest true "Sync run parameters"
// @Success 200 {object} dto.SyncRunResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Sync failed"
// @Security BearerAuth
// @Router /sync/run [post]
func (h *syncHandler) runSync(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RunSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RunSync", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	startDate, endDate, err := h.resolveWindow(c, req)
	if err != nil {
		return // resolveWindow already wrote the response
	}

	logger = logger.With(slog.String("company_id", req.CompanyID))
	logger.Info("Received request to run sync",
		slog.Time("start_date", startDate),
		slog.Time("end_date", endDate),
	)

	result, err := h.syncService.RunSync(c.Request.Context(), req.CompanyID, startDate, endDate)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrTransientFetch):
			logger.Warn("Sync failed on POS fetch", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "POS API unavailable, batch recorded as FAILED"})
		default:
			logger.Error("Sync run failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Sync failed, batch recorded as FAILED"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// resolveWindow fills missing dates from the company's watermark: incremental
// from lastImportDate, or yesterday as a full day when no watermark exists.
func (h *syncHandler) resolveWindow(c *gin.Context, req dto.RunSyncRequest) (time.Time, time.Time, error) {
	if req.StartDate != nil && req.EndDate != nil {
		return *req.StartDate, *req.EndDate, nil
	}

	company, err := h.companyService.GetCompanyByID(c.Request.Context(), req.CompanyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load company"})
		}
		return time.Time{}, time.Time{}, err
	}

	now := time.Now()
	var startDate, endDate time.Time
	if company.LastImportDate != nil {
		startDate, endDate = *company.LastImportDate, now
	} else {
		startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		startDate, endDate = startOfToday.AddDate(0, 0, -1), startOfToday
	}
	if req.StartDate != nil {
		startDate = *req.StartDate
	}
	if req.EndDate != nil {
		endDate = *req.EndDate
	}
	return startDate, endDate, nil
}
