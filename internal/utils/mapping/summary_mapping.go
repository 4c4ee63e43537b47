package mapping

import (
	"time"

	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	"github.com/byildiz78/kd-cdc-sub000/internal/models"
	"github.com/shopspring/decimal"
)

// keyDate parses the canonical sheet-date string of a summary key. Keys are
// only ever built from real times via TransactionLine.Key, so a parse failure
// is a programmer error and maps to the zero time.
func keyDate(k domain.SummaryKey) time.Time {
	t, _ := k.Date()
	return t
}

// keyTaxPercent parses the canonical tax-rate string of a summary key.
func keyTaxPercent(k domain.SummaryKey) decimal.Decimal {
	d, _ := decimal.NewFromString(k.TaxPercent)
	return d
}

// ToModelSummaryRecord converts a domain SummaryRecord to a model SummaryRecord
func ToModelSummaryRecord(d domain.SummaryRecord) models.SummaryRecord {
	return models.SummaryRecord{
		SummaryID:          d.SummaryID,
		CompanyID:          d.CompanyID,
		SheetDate:          keyDate(d.SummaryKey),
		BranchCode:         d.BranchCode,
		AccountingCode:     d.AccountingCode,
		MainAccountingCode: d.MainAccountingCode,
		IsMainCombo:        d.IsMainCombo,
		TaxPercent:         keyTaxPercent(d.SummaryKey),
		IsExternal:         d.IsExternal,
		BranchID:           d.BranchID,
		Quantity:           d.Quantity,
		SubTotal:           d.SubTotal,
		TaxTotal:           d.TaxTotal,
		Total:              d.Total,
		Version:            d.Version,
		DataHash:           d.DataHash,
		LastModified:       d.LastModified,
		LastSyncBatchID:    d.LastSyncBatchID,
	}
}

// ToDomainSummaryRecord converts a model SummaryRecord to a domain SummaryRecord
func ToDomainSummaryRecord(m models.SummaryRecord) domain.SummaryRecord {
	return domain.SummaryRecord{
		SummaryID: m.SummaryID,
		CompanyID: m.CompanyID,
		SummaryKey: domain.SummaryKey{
			SheetDate:          m.SheetDate.Format(domain.SheetDateLayout),
			BranchCode:         m.BranchCode,
			AccountingCode:     m.AccountingCode,
			MainAccountingCode: m.MainAccountingCode,
			IsMainCombo:        m.IsMainCombo,
			TaxPercent:         m.TaxPercent.StringFixed(2),
			IsExternal:         m.IsExternal,
			BranchID:           m.BranchID,
		},
		Measures: domain.Measures{
			Quantity: m.Quantity,
			SubTotal: m.SubTotal,
			TaxTotal: m.TaxTotal,
			Total:    m.Total,
		},
		Version:         m.Version,
		DataHash:        m.DataHash,
		LastModified:    m.LastModified,
		LastSyncBatchID: m.LastSyncBatchID,
	}
}

// ToDomainSummaryRecordSlice converts a slice of model SummaryRecords to domain SummaryRecords
func ToDomainSummaryRecordSlice(ms []models.SummaryRecord) []domain.SummaryRecord {
	ds := make([]domain.SummaryRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSummaryRecord(m)
	}
	return ds
}
