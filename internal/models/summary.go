package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SummaryRecord mirrors the summary_records table: one row per unique
// dimensional key per company, versioned on every recompute that changes data.
type SummaryRecord struct {
	SummaryID          string          `json:"summaryID"`
	CompanyID          string          `json:"companyID"`
	SheetDate          time.Time       `json:"sheetDate"` // DATE column
	BranchCode         string          `json:"branchCode"`
	AccountingCode     string          `json:"accountingCode"`
	MainAccountingCode string          `json:"mainAccountingCode"`
	IsMainCombo        bool            `json:"isMainCombo"`
	TaxPercent         decimal.Decimal `json:"taxPercent"`
	IsExternal         bool            `json:"isExternal"`
	BranchID           int64           `json:"branchID"`
	Quantity           decimal.Decimal `json:"quantity"`
	SubTotal           decimal.Decimal `json:"subTotal"`
	TaxTotal           decimal.Decimal `json:"taxTotal"`
	Total              decimal.Decimal `json:"total"`
	Version            int64           `json:"version"`
	DataHash           string          `json:"dataHash"`
	LastModified       time.Time       `json:"lastModified"`
	LastSyncBatchID    string          `json:"lastSyncBatchID"`
}
