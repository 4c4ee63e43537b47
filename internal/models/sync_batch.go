package models

import "time"

// SyncBatch mirrors the sync_batches table.
type SyncBatch struct {
	SyncBatchID      string     `json:"syncBatchID"`
	CompanyID        string     `json:"companyID"`
	StartDate        time.Time  `json:"startDate"`
	EndDate          time.Time  `json:"endDate"`
	Status           string     `json:"status"`
	StartedAt        time.Time  `json:"startedAt"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	DurationMs       int64      `json:"durationMs"`
	TotalRecords     int        `json:"totalRecords"`
	NewRecords       int        `json:"newRecords"`
	UpdatedRecords   int        `json:"updatedRecords"`
	UnchangedRecords int        `json:"unchangedRecords"`
	ErrorMessage     *string    `json:"errorMessage,omitempty"`
	ErrorDetails     *string    `json:"errorDetails,omitempty"`
}
