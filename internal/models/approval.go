package models

// ApprovalStatus is the state of a persisted approval row.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// Approval is a persisted approval row; unique on (voucher_id, level).
type Approval struct {
	ApprovalID string         `json:"approvalID"` // Primary Key
	VoucherID  string         `json:"voucherID"`
	Level      int            `json:"level"`
	Status     ApprovalStatus `json:"status"`
	ApproverID string         `json:"approverID"`
	Comments   string         `json:"comments"`
	AuditFields
}

// BACReview is a persisted BAC member review row.
type BACReview struct {
	ReviewID   string         `json:"reviewID"` // Primary Key
	VoucherID  string         `json:"voucherID"`
	ReviewerID string         `json:"reviewerID"`
	Status     ApprovalStatus `json:"status"`
	Comments   string         `json:"comments"`
	AuditFields
}
