package dto

import (
	"time"

	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
)

// Confirm-pull statuses reported by the ERP. The request itself succeeds even
// when the pull failed; the status only classifies the outcome.
const (
	PullStatusSuccess = "SUCCESS"
	PullStatusFailed  = "FAILED"
)

// ConfirmPullRequest is the ERP's acknowledgement after pulling summary and
// delta data for a snapshot.
type ConfirmPullRequest struct {
	SnapshotID   string  `json:"snapshotId" binding:"required"`
	Status       string  `json:"status" binding:"required,oneof=SUCCESS FAILED"`
	RecordCount  *int64  `json:"recordCount,omitempty"`
	DeltaCount   *int64  `json:"deltaCount,omitempty"`
	ErrorMessage *string `json:"errorMessage,omitempty"`
}

// ConfirmPullResponse reports the snapshot's resulting status. NextSnapshotID
// is set only when the confirmation succeeded and a successor PENDING snapshot
// was created.
type ConfirmPullResponse struct {
	Status         string  `json:"status"`
	NextSnapshotID *string `json:"nextSnapshotId,omitempty"`
}

// SnapshotResponse exposes the current watermark to the ERP before a pull.
type SnapshotResponse struct {
	SnapshotID    string    `json:"snapshotId"`
	SnapshotDate  time.Time `json:"snapshotDate"`
	DataStartDate time.Time `json:"dataStartDate"`
	DataEndDate   time.Time `json:"dataEndDate"`
	RecordCount   int64     `json:"recordCount"`
	DeltaCount    int64     `json:"deltaCount"`
	ERPStatus     string    `json:"erpStatus"`
}

// ToSnapshotResponse converts a domain Snapshot into the ERP-facing shape.
func ToSnapshotResponse(s domain.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		SnapshotID:    s.SnapshotID,
		SnapshotDate:  s.SnapshotDate,
		DataStartDate: s.DataStartDate,
		DataEndDate:   s.DataEndDate,
		RecordCount:   s.RecordCount,
		DeltaCount:    s.DeltaCount,
		ERPStatus:     string(s.ERPStatus),
	}
}

// ListSummariesResponse wraps the summary read surface.
type ListSummariesResponse struct {
	Summaries []domain.SummaryRecord `json:"summaries"`
}

// ListDeltasResponse wraps the delta read surface.
type ListDeltasResponse struct {
	Deltas []domain.DeltaWithOrders `json:"deltas"`
}

// CreateERPTokenRequest provisions a bearer token for one company's ERP.
type CreateERPTokenRequest struct {
	CompanyID string `json:"companyId" binding:"required"`
	Name      string `json:"name" binding:"required"`
	ExpiresIn *int64 `json:"expiresInHours,omitempty"`
}

// CreateERPTokenResponse returns the plaintext token. This is the only time it
// is available; only the hash is stored.
type CreateERPTokenResponse struct {
	TokenID   string     `json:"tokenId"`
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}
