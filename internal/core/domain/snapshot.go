package domain

import "time"

// ERPStatus is the state of a snapshot in the ERP consumption protocol.
type ERPStatus string

const (
	ERPPending   ERPStatus = "PENDING"
	ERPConfirmed ERPStatus = "CONFIRMED"
	ERPFailed    ERPStatus = "FAILED"
	ERPTimeout   ERPStatus = "TIMEOUT" // Set by external sweepers only; the core never produces it
)

// CanTransitionTo reports whether the status transition is legal.
// CONFIRMED is terminal. FAILED and TIMEOUT are retryable: the ERP may retry the
// same snapshot and still reach CONFIRMED.
func (s ERPStatus) CanTransitionTo(next ERPStatus) bool {
	switch s {
	case ERPPending:
		return next == ERPConfirmed || next == ERPFailed || next == ERPTimeout
	case ERPFailed, ERPTimeout:
		return next == ERPConfirmed || next == ERPFailed
	case ERPConfirmed:
		return false
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s ERPStatus) IsTerminal() bool {
	return s == ERPConfirmed
}

// Snapshot is the consumption watermark for one company: the boundary of data
// the external ERP has (or is about to have) pulled. The most recently created
// snapshot per company is the current one; new changes are classified against
// its SnapshotDate.
type Snapshot struct {
	SnapshotID      string     `json:"snapshotID"` // Primary Key (UUID)
	CompanyID       string     `json:"companyID"`
	SnapshotDate    time.Time  `json:"snapshotDate"` // Watermark instant
	DataStartDate   time.Time  `json:"dataStartDate"`
	DataEndDate     time.Time  `json:"dataEndDate"`
	RecordCount     int64      `json:"recordCount"`
	DeltaCount      int64      `json:"deltaCount"`
	ERPStatus       ERPStatus  `json:"erpStatus"`
	ERPPulledAt     *time.Time `json:"erpPulledAt,omitempty"`
	ERPConfirmedAt  *time.Time `json:"erpConfirmedAt,omitempty"`
	ERPErrorMessage *string    `json:"erpErrorMessage,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// DeltaChangeType classifies an aggregate-level change relative to the summary row.
type DeltaChangeType string

const (
	DeltaInsert DeltaChangeType = "INSERT" // Summary key first materialized
	DeltaUpdate DeltaChangeType = "UPDATE"
)

// DeltaType labels an aggregate change relative to the governing snapshot's
// watermark. PRE_SNAPSHOT changes are absorbed silently into the summary and
// never persisted as visible deltas.
type DeltaType string

const (
	DeltaPreSnapshot  DeltaType = "PRE_SNAPSHOT"
	DeltaPostSnapshot DeltaType = "POST_SNAPSHOT"
)

// DeltaRecord is an aggregate change visible to the ERP, emitted per SummaryKey
// per batch in which the aggregate changed after the governing snapshot.
type DeltaRecord struct {
	DeltaID   string `json:"deltaID"` // Primary Key (UUID)
	CompanyID string `json:"companyID"`
	SummaryKey
	ChangeType  DeltaChangeType `json:"changeType"`
	OldMeasures Measures        `json:"oldMeasures"`
	NewMeasures Measures        `json:"newMeasures"`
	DeltaType   DeltaType       `json:"deltaType"`
	SnapshotID  string          `json:"snapshotID"`
	Processed   bool            `json:"processed"`
	ProcessedAt *time.Time      `json:"processedAt,omitempty"`
	SyncBatchID string          `json:"syncBatchID"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// DeltaWithOrders pairs a delta with its contributing orders for the ERP read
// surface.
type DeltaWithOrders struct {
	Delta          DeltaRecord     `json:"delta"`
	AffectedOrders []AffectedOrder `json:"affectedOrders"`
}

// AffectedOrder links a DeltaRecord to one contributing order with that order's
// measure contribution to the delta's summary key.
type AffectedOrder struct {
	AffectedOrderID string   `json:"affectedOrderID"` // Primary Key (UUID)
	DeltaID         string   `json:"deltaID"`
	OrderKey        string   `json:"orderKey"`
	Contribution    Measures `json:"contribution"`
	OldVersion      int64    `json:"oldVersion"`
	NewVersion      int64    `json:"newVersion"`
	OldHash         string   `json:"oldHash"`
	NewHash         string   `json:"newHash"`
}
