package mapping

import (
	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
	"github.com/lgufms/voucher_tracking_app/internal/models"
)

func ToDomainNotification(m models.Notification) domain.Notification {
	return domain.Notification{
		NotificationID: m.NotificationID,
		UserID:         m.UserID,
		VoucherID:      m.VoucherID,
		Type:           m.Type,
		Title:          m.Title,
		Message:        m.Message,
		Priority:       domain.NotificationPriority(m.Priority),
		IsRead:         m.IsRead,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelNotification(d domain.Notification) models.Notification {
	return models.Notification{
		NotificationID: d.NotificationID,
		UserID:         d.UserID,
		VoucherID:      d.VoucherID,
		Type:           d.Type,
		Title:          d.Title,
		Message:        d.Message,
		Priority:       string(d.Priority),
		IsRead:         d.IsRead,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}
