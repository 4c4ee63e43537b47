package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot mirrors the snapshots table.
type Snapshot struct {
	SnapshotID      string     `json:"snapshotID"`
	CompanyID       string     `json:"companyID"`
	SnapshotDate    time.Time  `json:"snapshotDate"`
	DataStartDate   time.Time  `json:"dataStartDate"`
	DataEndDate     time.Time  `json:"dataEndDate"`
	RecordCount     int64      `json:"recordCount"`
	DeltaCount      int64      `json:"deltaCount"`
	ERPStatus       string     `json:"erpStatus"`
	ERPPulledAt     *time.Time `json:"erpPulledAt,omitempty"`
	ERPConfirmedAt  *time.Time `json:"erpConfirmedAt,omitempty"`
	ERPErrorMessage *string    `json:"erpErrorMessage,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// DeltaRecord mirrors the delta_records table. Only POST_SNAPSHOT rows are
// persisted; PRE_SNAPSHOT classifications are absorbed silently.
type DeltaRecord struct {
	DeltaID            string          `json:"deltaID"`
	CompanyID          string          `json:"companyID"`
	SheetDate          time.Time       `json:"sheetDate"`
	BranchCode         string          `json:"branchCode"`
	AccountingCode     string          `json:"accountingCode"`
	MainAccountingCode string          `json:"mainAccountingCode"`
	IsMainCombo        bool            `json:"isMainCombo"`
	TaxPercent         decimal.Decimal `json:"taxPercent"`
	IsExternal         bool            `json:"isExternal"`
	BranchID           int64           `json:"branchID"`
	ChangeType         string          `json:"changeType"`
	OldQuantity        decimal.Decimal `json:"oldQuantity"`
	OldSubTotal        decimal.Decimal `json:"oldSubTotal"`
	OldTaxTotal        decimal.Decimal `json:"oldTaxTotal"`
	OldTotal           decimal.Decimal `json:"oldTotal"`
	NewQuantity        decimal.Decimal `json:"newQuantity"`
	NewSubTotal        decimal.Decimal `json:"newSubTotal"`
	NewTaxTotal        decimal.Decimal `json:"newTaxTotal"`
	NewTotal           decimal.Decimal `json:"newTotal"`
	DeltaType          string          `json:"deltaType"`
	SnapshotID         string          `json:"snapshotID"`
	Processed          bool            `json:"processed"`
	ProcessedAt        *time.Time      `json:"processedAt,omitempty"`
	SyncBatchID        string          `json:"syncBatchID"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// AffectedOrder mirrors the affected_orders table.
type AffectedOrder struct {
	AffectedOrderID string          `json:"affectedOrderID"`
	DeltaID         string          `json:"deltaID"`
	OrderKey        string          `json:"orderKey"`
	Quantity        decimal.Decimal `json:"quantity"`
	SubTotal        decimal.Decimal `json:"subTotal"`
	TaxTotal        decimal.Decimal `json:"taxTotal"`
	Total           decimal.Decimal `json:"total"`
	OldVersion      int64           `json:"oldVersion"`
	NewVersion      int64           `json:"newVersion"`
	OldHash         string          `json:"oldHash"`
	NewHash         string          `json:"newHash"`
}
