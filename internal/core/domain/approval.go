package domain

// ApprovalStatus is the state of a single approval level on a voucher.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// Approval records one office's decision at a workflow-relative level.
// Level numbering depends on the voucher creator's chain: level 4 is Budget
// on a GSO voucher but Accounting on a standard one. At most one record
// exists per (voucher, level); writes upsert.
type Approval struct {
	ApprovalID string         `json:"approvalID"` // Primary Key (e.g., UUID)
	VoucherID  string         `json:"voucherID"`
	Level      int            `json:"level"`
	Status     ApprovalStatus `json:"status"`
	ApproverID string         `json:"approverID"` // UserID reference
	Comments   string         `json:"comments"`
	AuditFields
}

// BACReview is one BAC member's independent review of a GSO-sourced voucher.
// Only APPROVED reviews count toward the required quorum.
type BACReview struct {
	ReviewID   string         `json:"reviewID"` // Primary Key (e.g., UUID)
	VoucherID  string         `json:"voucherID"`
	ReviewerID string         `json:"reviewerID"` // UserID reference, role=BAC
	Status     ApprovalStatus `json:"status"`     // APPROVED or REJECTED
	Comments   string         `json:"comments"`
	AuditFields
}
