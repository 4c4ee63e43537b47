package hashing_test

import (
	"testing"
	"time"

	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	"github.com/byildiz78/kd-cdc-sub000/internal/utils/hashing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func line(txID string, qty string) domain.TransactionLine {
	return domain.TransactionLine{
		TransactionID:      txID,
		OrderKey:           "ORD-1",
		SheetDate:          time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		BranchID:           42,
		BranchCode:         "BR042",
		AccountingCode:     "600.01",
		MainAccountingCode: "600",
		TaxPercent:         decimal.NewFromInt(10),
		Quantity:           decimal.RequireFromString(qty),
		SubTotal:           decimal.RequireFromString("100.00"),
		TaxTotal:           decimal.RequireFromString("10.00"),
		Total:              decimal.RequireFromString("110.00"),
		ImportDate:         time.Date(2026, 1, 15, 8, 30, 0, 0, time.UTC),
	}
}

func TestContentHash_OrderIndependent(t *testing.T) {
	a := line("TX-001", "1")
	b := line("TX-002", "2")

	h1 := hashing.ContentHash([]domain.TransactionLine{a, b})
	h2 := hashing.ContentHash([]domain.TransactionLine{b, a})

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
}

func TestContentHash_FieldChangeChangesHash(t *testing.T) {
	a := line("TX-001", "1")
	b := line("TX-001", "1")
	b.Total = decimal.RequireFromString("120.00")

	assert.NotEqual(t,
		hashing.ContentHash([]domain.TransactionLine{a}),
		hashing.ContentHash([]domain.TransactionLine{b}),
	)
}

func TestContentHash_IgnoresImportDate(t *testing.T) {
	a := line("TX-001", "1")
	b := line("TX-001", "1")
	b.ImportDate = b.ImportDate.AddDate(0, 0, 3)

	assert.Equal(t,
		hashing.ContentHash([]domain.TransactionLine{a}),
		hashing.ContentHash([]domain.TransactionLine{b}),
	)
}

func TestContentHash_ScaleEqualDecimals(t *testing.T) {
	a := line("TX-001", "1.5")
	b := line("TX-001", "1.50")

	assert.Equal(t,
		hashing.ContentHash([]domain.TransactionLine{a}),
		hashing.ContentHash([]domain.TransactionLine{b}),
	)
}

func TestContentHash_LineRemovalChangesHash(t *testing.T) {
	a := line("TX-001", "1")
	b := line("TX-002", "2")

	assert.NotEqual(t,
		hashing.ContentHash([]domain.TransactionLine{a, b}),
		hashing.ContentHash([]domain.TransactionLine{a}),
	)
}

func TestSortLines_DoesNotMutateInput(t *testing.T) {
	a := line("TX-002", "1")
	b := line("TX-001", "2")
	input := []domain.TransactionLine{a, b}

	sorted := hashing.SortLines(input)

	assert.Equal(t, "TX-001", sorted[0].TransactionID)
	assert.Equal(t, "TX-002", sorted[1].TransactionID)
	assert.Equal(t, "TX-002", input[0].TransactionID)
}

func TestMeasureHash_EqualForScaleEqualMeasures(t *testing.T) {
	m1 := domain.Measures{
		Quantity: decimal.RequireFromString("3"),
		SubTotal: decimal.RequireFromString("100.5"),
		TaxTotal: decimal.RequireFromString("10.05"),
		Total:    decimal.RequireFromString("110.55"),
	}
	m2 := domain.Measures{
		Quantity: decimal.RequireFromString("3.0000"),
		SubTotal: decimal.RequireFromString("100.50"),
		TaxTotal: decimal.RequireFromString("10.0500"),
		Total:    decimal.RequireFromString("110.5500"),
	}

	assert.Equal(t, hashing.MeasureHash(m1), hashing.MeasureHash(m2))
}

func TestMeasureHash_DiffersForDifferentMeasures(t *testing.T) {
	m1 := domain.ZeroMeasures()
	m2 := domain.ZeroMeasures()
	m2.Total = decimal.RequireFromString("0.01")

	assert.NotEqual(t, hashing.MeasureHash(m1), hashing.MeasureHash(m2))
}
