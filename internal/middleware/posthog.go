package middleware

import (
	"net/http"
	"strings"

	"github.com/byildiz78/kd-cdc-sub000/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// PosthogMiddleware creates a Gin middleware handler that tracks API events
// with PostHog, keyed by the calling company when one is resolved.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		company, exists := GetCompanyFromContext(c)
		if !exists {
			return
		}

		// Event name from route path, e.g. "/api/v1/erp/confirm-pull" -> "api_v1_erp_confirm-pull"
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.ReplaceAll(eventName, "/", "_")
		if eventName == "" {
			return
		}

		posthogClient.Enqueue(company.CompanyID, eventName, map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
			"company":     company.Code,
		})
	}
}
