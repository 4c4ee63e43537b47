package mapping

import (
	"time"

	"github.com/byildiz78/kd-cdc-sub000/internal/core/domain"
	"github.com/byildiz78/kd-cdc-sub000/internal/models"
)

// ToModelSyncBatch converts a domain SyncBatch to a model SyncBatch
func ToModelSyncBatch(d domain.SyncBatch) models.SyncBatch {
	return models.SyncBatch{
		SyncBatchID:      d.SyncBatchID,
		CompanyID:        d.CompanyID,
		StartDate:        d.StartDate,
		EndDate:          d.EndDate,
		Status:           string(d.Status),
		StartedAt:        d.StartedAt,
		CompletedAt:      d.CompletedAt,
		DurationMs:       d.DurationMs,
		TotalRecords:     d.TotalRecords,
		NewRecords:       d.NewRecords,
		UpdatedRecords:   d.UpdatedRecords,
		UnchangedRecords: d.UnchangedRecords,
		ErrorMessage:     d.ErrorMessage,
		ErrorDetails:     d.ErrorDetails,
	}
}

// ToDomainSyncBatch converts a model SyncBatch to a domain SyncBatch
func ToDomainSyncBatch(m models.SyncBatch) domain.SyncBatch {
	return domain.SyncBatch{
		SyncBatchID: m.SyncBatchID,
		CompanyID:   m.CompanyID,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Status:      domain.BatchStatus(m.Status),
		StartedAt:   m.StartedAt,
		CompletedAt: m.CompletedAt,
		DurationMs:  m.DurationMs,
		BatchStats: domain.BatchStats{
			TotalRecords:     m.TotalRecords,
			NewRecords:       m.NewRecords,
			UpdatedRecords:   m.UpdatedRecords,
			UnchangedRecords: m.UnchangedRecords,
		},
		ErrorMessage: m.ErrorMessage,
		ErrorDetails: m.ErrorDetails,
	}
}

// ToModelChangeLogEntry converts a domain ChangeLogEntry to a model ChangeLogEntry
func ToModelChangeLogEntry(d domain.ChangeLogEntry) models.ChangeLogEntry {
	m := models.ChangeLogEntry{
		ChangeLogID:   d.ChangeLogID,
		CompanyID:     d.CompanyID,
		OrderKey:      d.OrderKey,
		ChangeType:    string(d.ChangeType),
		NewHash:       d.NewHash,
		OldVersion:    d.OldVersion,
		NewVersion:    d.NewVersion,
		ChangedFields: d.ChangedFields,
		DiffSnapshot:  d.DiffSnapshot,
		SyncBatchID:   d.SyncBatchID,
		DetectedAt:    d.DetectedAt,
	}
	if d.OldHash != "" {
		oldHash := d.OldHash
		m.OldHash = &oldHash
	}
	return m
}

// ToDomainChangeLogEntry converts a model ChangeLogEntry to a domain ChangeLogEntry
func ToDomainChangeLogEntry(m models.ChangeLogEntry) domain.ChangeLogEntry {
	d := domain.ChangeLogEntry{
		ChangeLogID:   m.ChangeLogID,
		CompanyID:     m.CompanyID,
		OrderKey:      m.OrderKey,
		ChangeType:    domain.ChangeType(m.ChangeType),
		NewHash:       m.NewHash,
		OldVersion:    m.OldVersion,
		NewVersion:    m.NewVersion,
		ChangedFields: m.ChangedFields,
		DiffSnapshot:  m.DiffSnapshot,
		SyncBatchID:   m.SyncBatchID,
		DetectedAt:    m.DetectedAt,
	}
	if m.OldHash != nil {
		d.OldHash = *m.OldHash
	}
	return d
}

// ToDomainChangeLogEntrySlice converts a slice of model ChangeLogEntries to domain ChangeLogEntries
func ToDomainChangeLogEntrySlice(ms []models.ChangeLogEntry) []domain.ChangeLogEntry {
	ds := make([]domain.ChangeLogEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainChangeLogEntry(m)
	}
	return ds
}

// ToDomainCompany converts a model Company to a domain Company
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:           m.CompanyID,
		Name:                m.Name,
		Code:                m.Code,
		POSAPIBaseURL:       m.POSAPIBaseURL,
		POSAPIKey:           m.POSAPIKey,
		SyncType:            domain.SyncType(m.SyncType),
		SyncIntervalMinutes: m.SyncIntervalMinutes,
		SyncDay:             time.Weekday(m.SyncDay),
		SyncHour:            m.SyncHour,
		SyncMinute:          m.SyncMinute,
		IsActive:            m.IsActive,
		SyncEnabled:         m.SyncEnabled,
		LastSyncAt:          m.LastSyncAt,
		LastImportDate:      m.LastImportDate,
		CreatedAt:           m.CreatedAt,
		LastUpdatedAt:       m.LastUpdatedAt,
	}
}

// ToModelCompany converts a domain Company to a model Company
func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:           d.CompanyID,
		Name:                d.Name,
		Code:                d.Code,
		POSAPIBaseURL:       d.POSAPIBaseURL,
		POSAPIKey:           d.POSAPIKey,
		SyncType:            string(d.SyncType),
		SyncIntervalMinutes: d.SyncIntervalMinutes,
		SyncDay:             int(d.SyncDay),
		SyncHour:            d.SyncHour,
		SyncMinute:          d.SyncMinute,
		IsActive:            d.IsActive,
		SyncEnabled:         d.SyncEnabled,
		LastSyncAt:          d.LastSyncAt,
		LastImportDate:      d.LastImportDate,
		CreatedAt:           d.CreatedAt,
		LastUpdatedAt:       d.LastUpdatedAt,
	}
}

// ToDomainERPToken converts a model ERPToken to a domain ERPToken
func ToDomainERPToken(m models.ERPToken) domain.ERPToken {
	return domain.ERPToken{
		TokenID:    m.TokenID,
		CompanyID:  m.CompanyID,
		Name:       m.Name,
		TokenHash:  m.TokenHash,
		LastUsedAt: m.LastUsedAt,
		ExpiresAt:  m.ExpiresAt,
		CreatedAt:  m.CreatedAt,
		RevokedAt:  m.RevokedAt,
	}
}

// ToModelERPToken converts a domain ERPToken to a model ERPToken
func ToModelERPToken(d domain.ERPToken) models.ERPToken {
	return models.ERPToken{
		TokenID:    d.TokenID,
		CompanyID:  d.CompanyID,
		Name:       d.Name,
		TokenHash:  d.TokenHash,
		LastUsedAt: d.LastUsedAt,
		ExpiresAt:  d.ExpiresAt,
		CreatedAt:  d.CreatedAt,
		RevokedAt:  d.RevokedAt,
	}
}
