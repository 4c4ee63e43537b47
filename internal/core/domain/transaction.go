package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionLine represents one raw line item of a POS order as fetched from the
// POS API, carrying the dimensional fields used for summary grouping.
// Note: all measures use github.com/shopspring/decimal for precise arithmetic.
type TransactionLine struct {
	TransactionID      string          `json:"transactionID"`      // POS line identifier, unique within an order
	OrderKey           string          `json:"orderKey"`           // Identifies the owning order
	SheetDate          time.Time       `json:"sheetDate"`          // Business date of the order
	BranchID           int64           `json:"branchID"`           // POS branch numeric id
	BranchCode         string          `json:"branchCode"`         // POS branch code
	AccountingCode     string          `json:"accountingCode"`     // Revenue accounting code
	MainAccountingCode string          `json:"mainAccountingCode"` // Parent accounting code
	IsMainCombo        bool            `json:"isMainCombo"`        // Line belongs to a combo parent
	IsExternal         bool            `json:"isExternal"`         // Line comes from an external sales channel
	TaxPercent         decimal.Decimal `json:"taxPercent"`
	Quantity           decimal.Decimal `json:"quantity"`
	SubTotal           decimal.Decimal `json:"subTotal"`
	TaxTotal           decimal.Decimal `json:"taxTotal"`
	Total              decimal.Decimal `json:"total"`
	ImportDate         time.Time       `json:"importDate"` // When the POS system imported/re-imported the source row
}

// Key returns the dimensional summary key this line contributes to.
func (l TransactionLine) Key() SummaryKey {
	return SummaryKey{
		SheetDate:          l.SheetDate.Format(SheetDateLayout),
		BranchCode:         l.BranchCode,
		AccountingCode:     l.AccountingCode,
		MainAccountingCode: l.MainAccountingCode,
		IsMainCombo:        l.IsMainCombo,
		TaxPercent:         l.TaxPercent.StringFixed(2),
		IsExternal:         l.IsExternal,
		BranchID:           l.BranchID,
	}
}

// TransactionVersion is one immutable, versioned row of an order's line set.
// For a given orderKey the rows with IsLatest=true always share one Version and
// one ContentHash; older versions are kept append-only for audit.
type TransactionVersion struct {
	TransactionLine
	CompanyID   string `json:"companyID"`
	Version     int64  `json:"version"`  // Monotonic per order, starts at 1
	IsLatest    bool   `json:"isLatest"` // Exactly one true row-set per order
	ContentHash string `json:"contentHash"`
	SyncBatchID string `json:"syncBatchID"`
}
