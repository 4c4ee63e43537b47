package models

import "time"

// Company mirrors the companies table.
type Company struct {
	CompanyID           string     `json:"companyID"`
	Name                string     `json:"name"`
	Code                string     `json:"code"`
	POSAPIBaseURL       string     `json:"posApiBaseURL"`
	POSAPIKey           string     `json:"-"`
	SyncType            string     `json:"syncType"`
	SyncIntervalMinutes int        `json:"syncIntervalMinutes"`
	SyncDay             int        `json:"syncDay"`
	SyncHour            int        `json:"syncHour"`
	SyncMinute          int        `json:"syncMinute"`
	IsActive            bool       `json:"isActive"`
	SyncEnabled         bool       `json:"syncEnabled"`
	LastSyncAt          *time.Time `json:"lastSyncAt,omitempty"`
	LastImportDate      *time.Time `json:"lastImportDate,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	LastUpdatedAt       time.Time  `json:"lastUpdatedAt"`
}

// ERPToken mirrors the erp_tokens table.
type ERPToken struct {
	TokenID    string     `json:"tokenID"`
	CompanyID  string     `json:"companyID"`
	Name       string     `json:"name"`
	TokenHash  string     `json:"-"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	RevokedAt  *time.Time `json:"-"`
}
