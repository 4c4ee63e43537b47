package domain

import (
	"encoding/json"
	"time"
)

// VersionOutcome is what the versioning engine reports back to the
// orchestrator for batch statistics.
type VersionOutcome string

const (
	OutcomeNew       VersionOutcome = "NEW"
	OutcomeUpdated   VersionOutcome = "UPDATED"
	OutcomeUnchanged VersionOutcome = "UNCHANGED"
)

// ChangeType classifies how an order changed in a batch.
type ChangeType string

const (
	ChangeCreated    ChangeType = "CREATED"
	ChangeUpdated    ChangeType = "UPDATED"
	ChangeReimported ChangeType = "REIMPORTED" // Same order re-sent under a new import run
)

// ChangeLogEntry is the audit record emitted once per order per batch in which
// its content hash changed. DiffSnapshot is an opaque versioned payload holding
// the full before/after line sets; its only consumers are audit and UI replay.
type ChangeLogEntry struct {
	ChangeLogID   string          `json:"changeLogID"` // Primary Key (UUID)
	CompanyID     string          `json:"companyID"`
	OrderKey      string          `json:"orderKey"`
	ChangeType    ChangeType      `json:"changeType"`
	OldHash       string          `json:"oldHash"` // Empty for CREATED
	NewHash       string          `json:"newHash"`
	OldVersion    int64           `json:"oldVersion"` // Zero for CREATED
	NewVersion    int64           `json:"newVersion"`
	ChangedFields []string        `json:"changedFields"`
	DiffSnapshot  json.RawMessage `json:"diffSnapshot"`
	SyncBatchID   string          `json:"syncBatchID"`
	DetectedAt    time.Time       `json:"detectedAt"`
}

// DiffSnapshotPayload is the serialized form stored in ChangeLogEntry.DiffSnapshot.
// SchemaVersion allows the payload shape to evolve without migrating history.
type DiffSnapshotPayload struct {
	SchemaVersion int               `json:"schemaVersion"`
	Before        []TransactionLine `json:"before"`
	After         []TransactionLine `json:"after"`
}

// DiffSnapshotSchemaVersion is the current DiffSnapshotPayload shape.
const DiffSnapshotSchemaVersion = 1
