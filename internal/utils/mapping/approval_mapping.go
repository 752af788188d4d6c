package mapping

import (
	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
	"github.com/lgufms/voucher_tracking_app/internal/models"
)

func ToDomainApproval(m models.Approval) domain.Approval {
	return domain.Approval{
		ApprovalID:  m.ApprovalID,
		VoucherID:   m.VoucherID,
		Level:       m.Level,
		Status:      domain.ApprovalStatus(m.Status),
		ApproverID:  m.ApproverID,
		Comments:    m.Comments,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelApproval(d domain.Approval) models.Approval {
	return models.Approval{
		ApprovalID:  d.ApprovalID,
		VoucherID:   d.VoucherID,
		Level:       d.Level,
		Status:      models.ApprovalStatus(d.Status),
		ApproverID:  d.ApproverID,
		Comments:    d.Comments,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainBACReview(m models.BACReview) domain.BACReview {
	return domain.BACReview{
		ReviewID:    m.ReviewID,
		VoucherID:   m.VoucherID,
		ReviewerID:  m.ReviewerID,
		Status:      domain.ApprovalStatus(m.Status),
		Comments:    m.Comments,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelBACReview(d domain.BACReview) models.BACReview {
	return models.BACReview{
		ReviewID:    d.ReviewID,
		VoucherID:   d.VoucherID,
		ReviewerID:  d.ReviewerID,
		Status:      models.ApprovalStatus(d.Status),
		Comments:    d.Comments,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}
