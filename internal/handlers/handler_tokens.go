package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/byildiz78/kd-cdc-sub000/internal/apperrors"
	portssvc "github.com/byildiz78/kd-cdc-sub000/internal/core/ports/services"
	"github.com/byildiz78/kd-cdc-sub000/internal/dto"
	"github.com/byildiz78/kd-cdc-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// erpTokenHandler handles provisioning of ERP bearer tokens.
type erpTokenHandler struct {
	tokenService portssvc.ERPTokenSvc
}

// newERPTokenHandler creates a new erpTokenHandler.
func newERPTokenHandler(ts portssvc.ERPTokenSvc) *erpTokenHandler {
	return &erpTokenHandler{tokenService: ts}
}

// RegisterERPTokenRoutes registers routes for ERP token provisioning.
func RegisterERPTokenRoutes(rg *gin.RouterGroup, tokenService portssvc.ERPTokenSvc) {
	h := newERPTokenHandler(tokenService)

	tokens := rg.Group("/erp-tokens")
	{
		tokens.POST("", h.createToken)
	}
}

// createToken godoc
// @Summary Create an ERP token
// @Description Provisions a bearer token for one company's ERP. The plaintext token is returned exactly once.
// @Tags erp-tokens
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateERPTokenRequest true "Token details"
// @Success 201 {object} dto.CreateERPTokenResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Failed to create token"
// @Security BearerAuth
// @Router /erp-tokens [post]
func (h *erpTokenHandler) createToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateERPTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateToken", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.tokenService.CreateToken(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create ERP token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	logger.Info("ERP token created", slog.String("company_id", req.CompanyID), slog.String("token_id", resp.TokenID))
	c.JSON(http.StatusCreated, resp)
}
