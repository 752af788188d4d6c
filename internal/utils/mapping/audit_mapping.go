package mapping

import (
	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
	"github.com/lgufms/voucher_tracking_app/internal/models"
)

func ToDomainAuditEntry(m models.AuditEntry) domain.AuditEntry {
	return domain.AuditEntry{
		EntryID:    m.EntryID,
		Action:     domain.AuditAction(m.Action),
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		OldValues:  m.OldValues,
		NewValues:  m.NewValues,
		UserID:     m.UserID,
		UserRole:   domain.Role(m.UserRole),
		VoucherID:  m.VoucherID,
		CreatedAt:  m.CreatedAt,
	}
}

func ToModelAuditEntry(d domain.AuditEntry) models.AuditEntry {
	return models.AuditEntry{
		EntryID:    d.EntryID,
		Action:     string(d.Action),
		EntityType: d.EntityType,
		EntityID:   d.EntityID,
		OldValues:  d.OldValues,
		NewValues:  d.NewValues,
		UserID:     d.UserID,
		UserRole:   string(d.UserRole),
		VoucherID:  d.VoucherID,
		CreatedAt:  d.CreatedAt,
	}
}
