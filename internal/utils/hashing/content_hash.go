package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"

	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
)

// Delimiters separating fields within a line and lines within an order. They
// are distinct so that field and line boundaries can never be confused.
const (
	fieldDelimiter = "|"
	lineDelimiter  = "#"
)

// ContentHash computes the stable SHA-256 content hash of one order's line set.
// Lines are sorted by TransactionID so that identical logical content yields the
// same hash regardless of source row ordering; any field change changes the hash.
// ImportDate is deliberately excluded: a re-sent but unchanged order must hash
// identically so the versioning engine can short-circuit it.
func ContentHash(lines []domain.TransactionLine) string {
	sorted := SortLines(lines)

	parts := make([]string, len(sorted))
	for i, l := range sorted {
		parts[i] = canonicalLine(l)
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, lineDelimiter)))
	return hex.EncodeToString(sum[:])
}

// SortLines returns a copy of lines ordered by TransactionID (lexicographic on
// the string form). The same ordering is used for hashing and field diffing so
// that positions line up.
func SortLines(lines []domain.TransactionLine) []domain.TransactionLine {
	sorted := make([]domain.TransactionLine, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].TransactionID < sorted[j].TransactionID
	})
	return sorted
}

// canonicalLine renders one line's content fields in a fixed order with
// canonical formatting: dates as yyyy-mm-dd and decimals at fixed scale, so
// scale-equal values (1.5 vs 1.50) render identically.
func canonicalLine(l domain.TransactionLine) string {
	fields := []string{
		l.TransactionID,
		l.SheetDate.Format(domain.SheetDateLayout),
		strconv.FormatInt(l.BranchID, 10),
		l.BranchCode,
		l.AccountingCode,
		l.MainAccountingCode,
		strconv.FormatBool(l.IsMainCombo),
		strconv.FormatBool(l.IsExternal),
		l.TaxPercent.StringFixed(2),
		l.Quantity.StringFixed(4),
		l.SubTotal.StringFixed(4),
		l.TaxTotal.StringFixed(4),
		l.Total.StringFixed(4),
	}
	return strings.Join(fields, fieldDelimiter)
}

// MeasureHash computes the hash of a summary record's measures, used to detect
// whether a recompute actually changed the aggregate.
func MeasureHash(m domain.Measures) string {
	s := strings.Join([]string{
		m.Quantity.StringFixed(4),
		m.SubTotal.StringFixed(4),
		m.TaxTotal.StringFixed(4),
		m.Total.StringFixed(4),
	}, fieldDelimiter)
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
