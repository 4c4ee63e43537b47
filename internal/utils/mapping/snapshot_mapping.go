package mapping

import (
	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	"github.com/byildiz78/kd-cdc-sub000/internal/models"
)

// ToModelSnapshot converts a domain Snapshot to a model Snapshot
func ToModelSnapshot(d domain.Snapshot) models.Snapshot {
	return models.Snapshot{
		SnapshotID:      d.SnapshotID,
		CompanyID:       d.CompanyID,
		SnapshotDate:    d.SnapshotDate,
		DataStartDate:   d.DataStartDate,
		DataEndDate:     d.DataEndDate,
		RecordCount:     d.RecordCount,
		DeltaCount:      d.DeltaCount,
		ERPStatus:       string(d.ERPStatus),
		ERPPulledAt:     d.ERPPulledAt,
		ERPConfirmedAt:  d.ERPConfirmedAt,
		ERPErrorMessage: d.ERPErrorMessage,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainSnapshot converts a model Snapshot to a domain Snapshot
func ToDomainSnapshot(m models.Snapshot) domain.Snapshot {
	return domain.Snapshot{
		SnapshotID:      m.SnapshotID,
		CompanyID:       m.CompanyID,
		SnapshotDate:    m.SnapshotDate,
		DataStartDate:   m.DataStartDate,
		DataEndDate:     m.DataEndDate,
		RecordCount:     m.RecordCount,
		DeltaCount:      m.DeltaCount,
		ERPStatus:       domain.ERPStatus(m.ERPStatus),
		ERPPulledAt:     m.ERPPulledAt,
		ERPConfirmedAt:  m.ERPConfirmedAt,
		ERPErrorMessage: m.ERPErrorMessage,
		CreatedAt:       m.CreatedAt,
	}
}

// ToModelDeltaRecord converts a domain DeltaRecord to a model DeltaRecord
func ToModelDeltaRecord(d domain.DeltaRecord) models.DeltaRecord {
	return models.DeltaRecord{
		DeltaID:            d.DeltaID,
		CompanyID:          d.CompanyID,
		SheetDate:          keyDate(d.SummaryKey),
		BranchCode:         d.BranchCode,
		AccountingCode:     d.AccountingCode,
		MainAccountingCode: d.MainAccountingCode,
		IsMainCombo:        d.IsMainCombo,
		TaxPercent:         keyTaxPercent(d.SummaryKey),
		IsExternal:         d.IsExternal,
		BranchID:           d.BranchID,
		ChangeType:         string(d.ChangeType),
		OldQuantity:        d.OldMeasures.Quantity,
		OldSubTotal:        d.OldMeasures.SubTotal,
		OldTaxTotal:        d.OldMeasures.TaxTotal,
		OldTotal:           d.OldMeasures.Total,
		NewQuantity:        d.NewMeasures.Quantity,
		NewSubTotal:        d.NewMeasures.SubTotal,
		NewTaxTotal:        d.NewMeasures.TaxTotal,
		NewTotal:           d.NewMeasures.Total,
		DeltaType:          string(d.DeltaType),
		SnapshotID:         d.SnapshotID,
		Processed:          d.Processed,
		ProcessedAt:        d.ProcessedAt,
		SyncBatchID:        d.SyncBatchID,
		CreatedAt:          d.CreatedAt,
	}
}

// ToDomainDeltaRecord converts a model DeltaRecord to a domain DeltaRecord
func ToDomainDeltaRecord(m models.DeltaRecord) domain.DeltaRecord {
	return domain.DeltaRecord{
		DeltaID:   m.DeltaID,
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
		ChangeType: domain.DeltaChangeType(m.ChangeType),
		OldMeasures: domain.Measures{
			Quantity: m.OldQuantity,
			SubTotal: m.OldSubTotal,
			TaxTotal: m.OldTaxTotal,
			Total:    m.OldTotal,
		},
		NewMeasures: domain.Measures{
			Quantity: m.NewQuantity,
			SubTotal: m.NewSubTotal,
			TaxTotal: m.NewTaxTotal,
			Total:    m.NewTotal,
		},
		DeltaType:   domain.DeltaType(m.DeltaType),
		SnapshotID:  m.SnapshotID,
		Processed:   m.Processed,
		ProcessedAt: m.ProcessedAt,
		SyncBatchID: m.SyncBatchID,
		CreatedAt:   m.CreatedAt,
	}
}

// ToDomainDeltaRecordSlice converts a slice of model DeltaRecords to domain DeltaRecords
func ToDomainDeltaRecordSlice(ms []models.DeltaRecord) []domain.DeltaRecord {
	ds := make([]domain.DeltaRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDeltaRecord(m)
	}
	return ds
}

// ToModelAffectedOrder converts a domain AffectedOrder to a model AffectedOrder
func ToModelAffectedOrder(d domain.AffectedOrder) models.AffectedOrder {
	return models.AffectedOrder{
		AffectedOrderID: d.AffectedOrderID,
		DeltaID:         d.DeltaID,
		OrderKey:        d.OrderKey,
		Quantity:        d.Contribution.Quantity,
		SubTotal:        d.Contribution.SubTotal,
		TaxTotal:        d.Contribution.TaxTotal,
		Total:           d.Contribution.Total,
		OldVersion:      d.OldVersion,
		NewVersion:      d.NewVersion,
		OldHash:         d.OldHash,
		NewHash:         d.NewHash,
	}
}

// ToDomainAffectedOrder converts a model AffectedOrder to a domain AffectedOrder
func ToDomainAffectedOrder(m models.AffectedOrder) domain.AffectedOrder {
	return domain.AffectedOrder{
		AffectedOrderID: m.AffectedOrderID,
		DeltaID:         m.DeltaID,
		OrderKey:        m.OrderKey,
		Contribution: domain.Measures{
			Quantity: m.Quantity,
			SubTotal: m.SubTotal,
			TaxTotal: m.TaxTotal,
			Total:    m.Total,
		},
		OldVersion: m.OldVersion,
		NewVersion: m.NewVersion,
		OldHash:    m.OldHash,
		NewHash:    m.NewHash,
	}
}

// ToDomainAffectedOrderSlice converts a slice of model AffectedOrders to domain AffectedOrders
func ToDomainAffectedOrderSlice(ms []models.AffectedOrder) []domain.AffectedOrder {
	ds := make([]domain.AffectedOrder, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAffectedOrder(m)
	}
	return ds
}
