package domain

import "time"

// AuditAction is the closed vocabulary of state-affecting actions.
type AuditAction string

const (
	ActionCreate           AuditAction = "CREATE"
	ActionSubmit           AuditAction = "SUBMIT"
	ActionSubmitRemarks    AuditAction = "SUBMIT_REMARKS"
	ActionUpdate           AuditAction = "UPDATE"
	ActionDelete           AuditAction = "DELETE"
	ActionReview           AuditAction = "REVIEW" // Mayor's review
	ActionSecretaryReview  AuditAction = "SECRETARY_REVIEW"
	ActionBACReview        AuditAction = "BAC_REVIEW"
	ActionBudgetReview     AuditAction = "BUDGET_REVIEW"
	ActionAccountingReview AuditAction = "ACCOUNTING_REVIEW"
	ActionCheckIssuance    AuditAction = "CHECK_ISSUANCE"
	ActionMarkReleased     AuditAction = "MARK_RELEASED"
	ActionPasswordChange   AuditAction = "PASSWORD_CHANGE"
	ActionReject           AuditAction = "REJECT"
)

// AuditEntry is an immutable, append-only record of one action. Entries are
// the system of record: they are never mutated or deleted, and they outlive
// voucher deletion.
type AuditEntry struct {
	EntryID    string                 `json:"entryID"` // Primary Key (e.g., UUID)
	Action     AuditAction            `json:"action"`
	EntityType string                 `json:"entityType"`
	EntityID   string                 `json:"entityID"`
	OldValues  map[string]interface{} `json:"oldValues,omitempty"`
	NewValues  map[string]interface{} `json:"newValues,omitempty"`
	UserID     string                 `json:"userID"`
	// UserRole is the actor's role at the time of the action; the reviewer
	// resolution algorithm reads it when interpreting Treasury history.
	UserRole  Role      `json:"userRole"`
	VoucherID *string   `json:"voucherID,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
