package mapping

import (
	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	"github.com/byildiz78/kd-cdc-sub000/internal/models"
)

// ToModelTransactionVersion converts a domain TransactionVersion to a model TransactionVersion
func ToModelTransactionVersion(d domain.TransactionVersion) models.TransactionVersion {
	return models.TransactionVersion{
		CompanyID:          d.CompanyID,
		OrderKey:           d.OrderKey,
		TransactionID:      d.TransactionID,
		Version:            d.Version,
		IsLatest:           d.IsLatest,
		ContentHash:        d.ContentHash,
		SheetDate:          d.SheetDate,
		BranchID:           d.BranchID,
		BranchCode:         d.BranchCode,
		AccountingCode:     d.AccountingCode,
		MainAccountingCode: d.MainAccountingCode,
		IsMainCombo:        d.IsMainCombo,
		IsExternal:         d.IsExternal,
		TaxPercent:         d.TaxPercent,
		Quantity:           d.Quantity,
		SubTotal:           d.SubTotal,
		TaxTotal:           d.TaxTotal,
		Total:              d.Total,
		ImportDate:         d.ImportDate,
		SyncBatchID:        d.SyncBatchID,
	}
}

// ToDomainTransactionVersion converts a model TransactionVersion to a domain TransactionVersion
func ToDomainTransactionVersion(m models.TransactionVersion) domain.TransactionVersion {
	return domain.TransactionVersion{
		TransactionLine: domain.TransactionLine{
			TransactionID:      m.TransactionID,
			OrderKey:           m.OrderKey,
			SheetDate:          m.SheetDate,
			BranchID:           m.BranchID,
			BranchCode:         m.BranchCode,
			AccountingCode:     m.AccountingCode,
			MainAccountingCode: m.MainAccountingCode,
			IsMainCombo:        m.IsMainCombo,
			IsExternal:         m.IsExternal,
			TaxPercent:         m.TaxPercent,
			Quantity:           m.Quantity,
			SubTotal:           m.SubTotal,
			TaxTotal:           m.TaxTotal,
			Total:              m.Total,
			ImportDate:         m.ImportDate,
		},
		CompanyID:   m.CompanyID,
		Version:     m.Version,
		IsLatest:    m.IsLatest,
		ContentHash: m.ContentHash,
		SyncBatchID: m.SyncBatchID,
	}
}

// ToDomainTransactionVersionSlice converts a slice of model TransactionVersions to domain TransactionVersions
func ToDomainTransactionVersionSlice(ms []models.TransactionVersion) []domain.TransactionVersion {
	ds := make([]domain.TransactionVersion, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransactionVersion(m)
	}
	return ds
}

// ToDomainLineSlice extracts the raw line content from model versions. Used
// when re-aggregating latest rows for summary materialization.
func ToDomainLineSlice(ms []models.TransactionVersion) []domain.TransactionLine {
	ls := make([]domain.TransactionLine, len(ms))
	for i, m := range ms {
		ls[i] = ToDomainTransactionVersion(m).TransactionLine
	}
	return ls
}
