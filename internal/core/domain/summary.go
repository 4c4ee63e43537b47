package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SheetDateLayout is the canonical date rendering used in summary keys and
// content hashing.
const SheetDateLayout = "2006-01-02"

// SummaryKey is the dimensional grouping key for aggregation. It is a value
// type with structural equality; dates and tax rates are rendered canonically
// so that scale-equal values compare equal.
type SummaryKey struct {
	SheetDate          string `json:"sheetDate"` // yyyy-mm-dd
	BranchCode         string `json:"branchCode"`
	AccountingCode     string `json:"accountingCode"`
	MainAccountingCode string `json:"mainAccountingCode"`
	IsMainCombo        bool   `json:"isMainCombo"`
	TaxPercent         string `json:"taxPercent"` // Fixed two-decimal rendering
	IsExternal         bool   `json:"isExternal"`
	BranchID           int64  `json:"branchID"`
}

// Date parses the key's sheet date back into a time.Time.
func (k SummaryKey) Date() (time.Time, error) {
	return time.Parse(SheetDateLayout, k.SheetDate)
}

// Measures holds the additive aggregates of a line group.
type Measures struct {
	Quantity decimal.Decimal `json:"quantity"`
	SubTotal decimal.Decimal `json:"subTotal"`
	TaxTotal decimal.Decimal `json:"taxTotal"`
	Total    decimal.Decimal `json:"total"`
}

// ZeroMeasures returns a Measures with all components set to zero.
// decimal.Decimal's zero value is usable, but an explicit constructor keeps
// intent clear at call sites.
func ZeroMeasures() Measures {
	return Measures{
		Quantity: decimal.Zero,
		SubTotal: decimal.Zero,
		TaxTotal: decimal.Zero,
		Total:    decimal.Zero,
	}
}

// Add returns the component-wise sum of m and other.
func (m Measures) Add(other Measures) Measures {
	return Measures{
		Quantity: m.Quantity.Add(other.Quantity),
		SubTotal: m.SubTotal.Add(other.SubTotal),
		TaxTotal: m.TaxTotal.Add(other.TaxTotal),
		Total:    m.Total.Add(other.Total),
	}
}

// Equal reports whether the two measure sets are numerically equal.
func (m Measures) Equal(other Measures) bool {
	return m.Quantity.Equal(other.Quantity) &&
		m.SubTotal.Equal(other.SubTotal) &&
		m.TaxTotal.Equal(other.TaxTotal) &&
		m.Total.Equal(other.Total)
}

// SummaryChange describes one summary key whose aggregate actually changed
// during materialization. It feeds the snapshot/delta classifier.
type SummaryChange struct {
	Key         SummaryKey
	ChangeType  SummaryChangeType
	OldMeasures Measures
	NewMeasures Measures
	NewVersion  int64
}

// SummaryChangeType distinguishes a first materialization from a recompute.
type SummaryChangeType string

const (
	SummaryCreated SummaryChangeType = "INSERT"
	SummaryUpdated SummaryChangeType = "UPDATE"
)

// SummaryRecord is the materialized aggregate for one SummaryKey. Its measures
// always equal the sum of contributions of all latest TransactionVersions
// matching the key.
type SummaryRecord struct {
	SummaryID string `json:"summaryID"` // Primary Key (UUID)
	CompanyID string `json:"companyID"`
	SummaryKey
	Measures
	Version         int64     `json:"version"` // Incremented on every recompute that changes data
	DataHash        string    `json:"dataHash"`
	LastModified    time.Time `json:"lastModified"`
	LastSyncBatchID string    `json:"lastSyncBatchID"`
}
