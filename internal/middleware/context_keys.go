package middleware

import (
	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// companyKey is the key used to store the authenticated ERP caller's company
// in the Gin context. Using a custom type prevents collisions.
const companyKey = contextKey("company")

// GetCompanyFromContext retrieves the authenticated company from the Gin
// context. It returns the company and a boolean indicating if it was found.
func GetCompanyFromContext(c *gin.Context) (*domain.Company, bool) {
	companyVal, exists := c.Get(string(companyKey))
	if !exists {
		return nil, false
	}

	company, ok := companyVal.(*domain.Company)
	if !ok {
		// Should not happen if the auth middleware sets it correctly.
		return nil, false
	}

	return company, true
}
