package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/byildiz78/kd-cdc-sub000/internal/core/ports/services"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ERPAuthMiddleware authenticates ERP calls and scopes them to one company.
// It accepts either an opaque ERP API token (validated against stored bcrypt
// hashes) or a signed JWT whose subject is the company id. The resolved
// company is stored in the context for handlers.
func ERPAuthMiddleware(tokenSvc services.ERPTokenSvc, companySvc services.CompanySvc, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}
		tokenString := parts[1]

		// Opaque API token first; JWT as fallback.
		if company, err := tokenSvc.ValidateToken(c.Request.Context(), tokenString); err == nil {
			c.Set(string(companyKey), company)
			c.Next()
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok || !token.Valid || claims.Subject == "" {
			logger.Warn("Company id (subject) missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		company, err := companySvc.GetCompanyByID(c.Request.Context(), claims.Subject)
		if err != nil {
			logger.Warn("Token subject is not a known company", "company_id", claims.Subject)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown company"})
			return
		}

		c.Set(string(companyKey), company)
		c.Next()
	}
}
