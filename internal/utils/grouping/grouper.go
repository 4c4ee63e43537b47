package grouping

import "github.com/byildiz78/kd-cdc-sub000/internal/core/domain"

// ByOrder groups raw transaction lines by their order key, used for change
// detection.
func ByOrder(lines []domain.TransactionLine) map[string][]domain.TransactionLine {
	grouped := make(map[string][]domain.TransactionLine)
	for _, l := range lines {
		grouped[l.OrderKey] = append(grouped[l.OrderKey], l)
	}
	return grouped
}

// BySummaryKey groups raw transaction lines by their dimensional summary key,
// used for aggregation.
func BySummaryKey(lines []domain.TransactionLine) map[domain.SummaryKey][]domain.TransactionLine {
	grouped := make(map[domain.SummaryKey][]domain.TransactionLine)
	for _, l := range lines {
		key := l.Key()
		grouped[key] = append(grouped[key], l)
	}
	return grouped
}

// Aggregate sums the measures over a line group.
func Aggregate(lines []domain.TransactionLine) domain.Measures {
	total := domain.ZeroMeasures()
	for _, l := range lines {
		total = total.Add(domain.Measures{
			Quantity: l.Quantity,
			SubTotal: l.SubTotal,
			TaxTotal: l.TaxTotal,
			Total:    l.Total,
		})
	}
	return total
}

// Contribution sums only the lines of one order that match the given summary
// key. It backs the per-order contribution recorded on AffectedOrder rows.
func Contribution(orderLines []domain.TransactionLine, key domain.SummaryKey) domain.Measures {
	total := domain.ZeroMeasures()
	for _, l := range orderLines {
		if l.Key() != key {
			continue
		}
		total = total.Add(domain.Measures{
			Quantity: l.Quantity,
			SubTotal: l.SubTotal,
			TaxTotal: l.TaxTotal,
			Total:    l.Total,
		})
	}
	return total
}
