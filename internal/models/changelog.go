package models

import (
	"encoding/json"
	"time"
)

// ChangeLogEntry mirrors the change_log table. ChangedFields is stored as a
// text[] column; DiffSnapshot as an opaque jsonb payload.
type ChangeLogEntry struct {
	ChangeLogID   string          `json:"changeLogID"`
	CompanyID     string          `json:"companyID"`
	OrderKey      string          `json:"orderKey"`
	ChangeType    string          `json:"changeType"`
	OldHash       *string         `json:"oldHash,omitempty"`
	NewHash       string          `json:"newHash"`
	OldVersion    int64           `json:"oldVersion"`
	NewVersion    int64           `json:"newVersion"`
	ChangedFields []string        `json:"changedFields"`
	DiffSnapshot  json.RawMessage `json:"diffSnapshot"`
	SyncBatchID   string          `json:"syncBatchID"`
	DetectedAt    time.Time       `json:"detectedAt"`
}
