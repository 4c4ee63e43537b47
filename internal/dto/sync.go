package dto

import "time"

// RunSyncRequest triggers one sync batch for a company. Dates are optional;
// when omitted the incremental window is derived from the company's
// lastImportDate watermark (or yesterday, full day, on the first run).
type RunSyncRequest struct {
	CompanyID string     `json:"companyId" binding:"required"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// SyncRunResult reports the outcome of one completed sync batch.
type SyncRunResult struct {
	BatchID          string `json:"batchId"`
	TotalRecords     int    `json:"totalRecords"`
	NewRecords       int    `json:"newRecords"`
	UpdatedRecords   int    `json:"updatedRecords"`
	UnchangedRecords int    `json:"unchangedRecords"`
	DurationMs       int64  `json:"durationMs"`
}
