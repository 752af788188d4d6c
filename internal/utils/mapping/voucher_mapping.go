package mapping

import (
	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
	"github.com/lgufms/voucher_tracking_app/internal/models"
)

func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

func ToDomainVoucherItem(m models.VoucherItem) domain.VoucherItem {
	return domain.VoucherItem{
		ItemID:      m.ItemID,
		VoucherID:   m.VoucherID,
		Description: m.Description,
		Quantity:    m.Quantity,
		Unit:        m.Unit,
		UnitPrice:   m.UnitPrice,
		TotalPrice:  m.TotalPrice,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelVoucherItem(d domain.VoucherItem) models.VoucherItem {
	return models.VoucherItem{
		ItemID:      d.ItemID,
		VoucherID:   d.VoucherID,
		Description: d.Description,
		Quantity:    d.Quantity,
		Unit:        d.Unit,
		UnitPrice:   d.UnitPrice,
		TotalPrice:  d.TotalPrice,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainVoucher(m models.Voucher, items []models.VoucherItem) domain.Voucher {
	domainItems := make([]domain.VoucherItem, 0, len(items))
	for _, item := range items {
		domainItems = append(domainItems, ToDomainVoucherItem(item))
	}
	return domain.Voucher{
		VoucherID:     m.VoucherID,
		Payee:         m.Payee,
		Address:       m.Address,
		Amount:        m.Amount,
		Particulars:   m.Particulars,
		Tags:          m.Tags,
		SourceOffices: m.SourceOffices,
		Status:        domain.VoucherStatus(m.Status),
		CreatorRole:   domain.Role(m.CreatorRole),
		AssignedTo:    m.AssignedTo,
		Items:         domainItems,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelVoucher(d domain.Voucher) models.Voucher {
	return models.Voucher{
		VoucherID:     d.VoucherID,
		Payee:         d.Payee,
		Address:       d.Address,
		Amount:        d.Amount,
		Particulars:   d.Particulars,
		Tags:          d.Tags,
		SourceOffices: d.SourceOffices,
		Status:        models.VoucherStatus(d.Status),
		CreatorRole:   string(d.CreatorRole),
		AssignedTo:    d.AssignedTo,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

func ToModelVoucherItems(items []domain.VoucherItem) []models.VoucherItem {
	out := make([]models.VoucherItem, 0, len(items))
	for _, item := range items {
		out = append(out, ToModelVoucherItem(item))
	}
	return out
}
