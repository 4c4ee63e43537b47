package domain

import "time"

// BatchStatus is the state of one sync pipeline execution.
type BatchStatus string

const (
	BatchRunning   BatchStatus = "RUNNING"
	BatchCompleted BatchStatus = "COMPLETED"
	BatchFailed    BatchStatus = "FAILED"
)

// CanTransitionTo reports whether the status transition is legal.
// COMPLETED and FAILED are terminal; a batch is finalized exactly once.
func (s BatchStatus) CanTransitionTo(next BatchStatus) bool {
	return s == BatchRunning && (next == BatchCompleted || next == BatchFailed)
}

// BatchStats holds the per-batch order tallies.
type BatchStats struct {
	TotalRecords     int `json:"totalRecords"` // Orders seen in the batch
	NewRecords       int `json:"newRecords"`
	UpdatedRecords   int `json:"updatedRecords"`
	UnchangedRecords int `json:"unchangedRecords"`
}

// SyncBatch is one execution of the sync pipeline for a company over a date
// range. It is created RUNNING at orchestration start and finalized exactly
// once at the end, success or failure.
type SyncBatch struct {
	SyncBatchID string      `json:"syncBatchID"` // Primary Key (UUID)
	CompanyID   string      `json:"companyID"`
	StartDate   time.Time   `json:"startDate"`
	EndDate     time.Time   `json:"endDate"`
	Status      BatchStatus `json:"status"`
	StartedAt   time.Time   `json:"startedAt"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
	DurationMs  int64       `json:"durationMs"`
	BatchStats
	ErrorMessage *string `json:"errorMessage,omitempty"`
	ErrorDetails *string `json:"errorDetails,omitempty"` // Raw error detail for operator visibility
}
