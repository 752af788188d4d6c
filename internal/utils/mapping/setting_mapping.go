package mapping

import (
	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
	"github.com/lgufms/voucher_tracking_app/internal/models"
)

func ToDomainSystemSetting(m models.SystemSetting) domain.SystemSetting {
	return domain.SystemSetting{
		Key:         m.Key,
		Value:       m.Value,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelSystemSetting(d domain.SystemSetting) models.SystemSetting {
	return models.SystemSetting{
		Key:         d.Key,
		Value:       d.Value,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}
