package domain

import "time"

// SyncType selects the cadence rule used by the scheduler for a company.
type SyncType string

const (
	SyncInterval SyncType = "INTERVAL" // Every SyncIntervalMinutes
	SyncDaily    SyncType = "DAILY"    // At SyncHour:SyncMinute each day
	SyncWeekly   SyncType = "WEEKLY"   // At SyncHour:SyncMinute on SyncDay
)

// Company is one tenant: an independently scheduled POS source feeding the ERP.
type Company struct {
	CompanyID           string       `json:"companyID"` // Primary Key (UUID)
	Name                string       `json:"name"`
	Code                string       `json:"code"` // Short unique code used in operator tooling
	POSAPIBaseURL       string       `json:"posApiBaseURL"`
	POSAPIKey           string       `json:"-"` // Never expose in JSON responses
	SyncType            SyncType     `json:"syncType"`
	SyncIntervalMinutes int          `json:"syncIntervalMinutes"` // INTERVAL only
	SyncDay             time.Weekday `json:"syncDay"`             // WEEKLY only
	SyncHour            int          `json:"syncHour"`            // DAILY and WEEKLY
	SyncMinute          int          `json:"syncMinute"`          // DAILY and WEEKLY
	IsActive            bool         `json:"isActive"`
	SyncEnabled         bool         `json:"syncEnabled"`
	LastSyncAt          *time.Time   `json:"lastSyncAt,omitempty"`
	LastImportDate      *time.Time   `json:"lastImportDate,omitempty"` // Import-date high-water mark
	CreatedAt           time.Time    `json:"createdAt"`
	LastUpdatedAt       time.Time    `json:"lastUpdatedAt"`
}

// ERPToken authenticates the external ERP's pull/confirm calls for one company.
type ERPToken struct {
	TokenID    string     `json:"tokenID"` // Primary Key (UUID)
	CompanyID  string     `json:"companyID"`
	Name       string     `json:"name"`
	TokenHash  string     `json:"-"` // bcrypt hash; never expose in JSON responses
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	RevokedAt  *time.Time `json:"-"`
}

// IsExpired checks if the token has expired.
func (t *ERPToken) IsExpired() bool {
	if t.ExpiresAt == nil {
		return false
	}
	return t.ExpiresAt.Before(time.Now())
}

// IsRevoked checks if the token has been revoked.
func (t *ERPToken) IsRevoked() bool {
	return t.RevokedAt != nil
}
