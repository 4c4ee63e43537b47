package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionVersion mirrors the transaction_versions table. Rows are
// append-only; is_latest is flipped off when a newer version is written.
type TransactionVersion struct {
	RowID              int64           `json:"rowID"` // BIGSERIAL surrogate key
	CompanyID          string          `json:"companyID"`
	OrderKey           string          `json:"orderKey"`
	TransactionID      string          `json:"transactionID"`
	Version            int64           `json:"version"`
	IsLatest           bool            `json:"isLatest"`
	ContentHash        string          `json:"contentHash"`
	SheetDate          time.Time       `json:"sheetDate"`
	BranchID           int64           `json:"branchID"`
	BranchCode         string          `json:"branchCode"`
	AccountingCode     string          `json:"accountingCode"`
	MainAccountingCode string          `json:"mainAccountingCode"`
	IsMainCombo        bool            `json:"isMainCombo"`
	IsExternal         bool            `json:"isExternal"`
	TaxPercent         decimal.Decimal `json:"taxPercent"`
	Quantity           decimal.Decimal `json:"quantity"`
	SubTotal           decimal.Decimal `json:"subTotal"`
	TaxTotal           decimal.Decimal `json:"taxTotal"`
	Total              decimal.Decimal `json:"total"`
	ImportDate         time.Time       `json:"importDate"`
	SyncBatchID        string          `json:"syncBatchID"`
	CreatedAt          time.Time       `json:"createdAt"`
}
