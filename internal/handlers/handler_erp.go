package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/byildiz78/kd-cdc-sub000/internal/apperrors"
	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	portssvc "github.com/byildiz78/kd-cdc-sub000/internal/core/ports/services"
	"github.com/byildiz78/kd-cdc-sub000/internal/dto"
	"github.com/byildiz78/kd-cdc-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// erpHandler handles the ERP-facing pull and confirm surface. Every route is
// scoped to the authenticated company from the context.
type erpHandler struct {
	snapshotService portssvc.SnapshotSvcFacade
}

// newERPHandler creates a new erpHandler.
func newERPHandler(ss portssvc.SnapshotSvcFacade) *erpHandler {
	return &erpHandler{snapshotService: ss}
}

// RegisterERPRoutes registers the ERP pull/confirm routes.
func RegisterERPRoutes(rg *gin.RouterGroup, snapshotService portssvc.SnapshotSvcFacade) {
	h := newERPHandler(snapshotService)

	erp := rg.Group("/erp")
	{
		erp.GET("/snapshot/current", h.getCurrentSnapshot)
		erp.GET("/summary", h.listSummaries)
		erp.GET("/deltas", h.listDeltas)
		erp.POST("/confirm-pull", h.confirmPull)
	}
}

// getCurrentSnapshot godoc
// @Summary Get the current snapshot
// @Description Returns the company's governing snapshot so the ERP can discover what to pull and which id to confirm.
// @Tags erp
// @Produce  json
// @Success 200 {object} dto.SnapshotResponse
// @Failure 404 {object} map[string]string "No snapshot yet"
// @Failure 500 {object} map[string]string "Failed to load snapshot"
// @Security BearerAuth
// @Router /erp/snapshot/current [get]
func (h *erpHandler) getCurrentSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	company, ok := middleware.GetCompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	snapshot, err := h.snapshotService.GetCurrentSnapshot(c.Request.Context(), company.CompanyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No snapshot exists yet; run a sync first"})
			return
		}
		logger.Error("Failed to load current snapshot", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load snapshot"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSnapshotResponse(*snapshot))
}

// listSummaries godoc
// @Summary List summary records
// @Description Returns materialized summary records whose sheet date falls in the requested range.
// @Tags erp
// @Produce  json
// @Param   startDate query string true "Range start (YYYY-MM-DD)"
// @Param   endDate query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.ListSummariesResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 500 {object} map[string]string "Failed to list summaries"
// @Security BearerAuth
// @Router /erp/summary [get]
func (h *erpHandler) listSummaries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	company, ok := middleware.GetCompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	startDate, endDate, ok := bindDateRange(c)
	if !ok {
		return
	}

	summaries, err := h.snapshotService.ListSummaries(c.Request.Context(), company.CompanyID, startDate, endDate)
	if err != nil {
		logger.Error("Failed to list summaries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list summaries"})
		return
	}

	c.JSON(http.StatusOK, dto.ListSummariesResponse{Summaries: summaries})
}

// listDeltas godoc
// @Summary List delta records
// @Description Returns POST_SNAPSHOT deltas with their contributing orders for the requested sheet-date range.
// @Tags erp
// @Produce  json
// @Param   startDate query string true "Range start (YYYY-MM-DD)"
// @Param   endDate query string true "Range end (YYYY-MM-DD)"
// @Param   onlyUnprocessed query bool false "Restrict to deltas not yet confirmed"
// @Success 200 {object} dto.ListDeltasResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 500 {object} map[string]string "Failed to list deltas"
// @Security BearerAuth
// @Router /erp/deltas [get]
func (h *erpHandler) listDeltas(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	company, ok := middleware.GetCompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	startDate, endDate, ok := bindDateRange(c)
	if !ok {
		return
	}
	onlyUnprocessed := c.Query("onlyUnprocessed") == "true"

	deltas, err := h.snapshotService.ListDeltas(c.Request.Context(), company.CompanyID, startDate, endDate, onlyUnprocessed)
	if err != nil {
		logger.Error("Failed to list deltas", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list deltas"})
		return
	}

	c.JSON(http.StatusOK, dto.ListDeltasResponse{Deltas: deltas})
}

// confirmPull godoc
// @Summary Confirm a snapshot pull
// @Description Processes the ERP's acknowledgement. SUCCESS confirms the snapshot, marks its deltas processed and opens a successor snapshot; FAILED records the error and leaves the snapshot retryable.
// @Tags erp
// @Accept  json
// @Produce  json
// @Param   request body dto.ConfirmPullRequest true "Pull outcome"
// @Success 200 {object} dto.ConfirmPullResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Snapshot belongs to a different company"
// @Failure 404 {object} map[string]string "Snapshot not found"
// @Failure 409 {object} map[string]string "Snapshot already confirmed"
// @Failure 500 {object} map[string]string "Failed to confirm pull"
// @Security BearerAuth
// @Router /erp/confirm-pull [post]
func (h *erpHandler) confirmPull(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	company, ok := middleware.GetCompanyFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ConfirmPullRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConfirmPull", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(
		slog.String("company_id", company.CompanyID),
		slog.String("snapshot_id", req.SnapshotID),
	)

	resp, err := h.snapshotService.ConfirmPull(c.Request.Context(), company.CompanyID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			logger.Warn("Cross-company confirm attempt rejected")
			c.JSON(http.StatusForbidden, gin.H{"error": "Snapshot belongs to a different company"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to confirm pull", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm pull"})
		}
		return
	}

	logger.Info("Pull confirmation processed", slog.String("status", resp.Status))
	c.JSON(http.StatusOK, resp)
}

func bindDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	startDate, err := time.Parse(domain.SheetDateLayout, c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate must be YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	endDate, err := time.Parse(domain.SheetDateLayout, c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must be YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	if endDate.Before(startDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endDate precedes startDate"})
		return time.Time{}, time.Time{}, false
	}
	return startDate, endDate, true
}
