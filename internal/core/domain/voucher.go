package domain

import "github.com/shopspring/decimal"

// VoucherStatus indicates the coarse lifecycle state of a disbursement voucher.
// The office whose action is next required is derived from approvals, BAC
// reviews and the audit trail, never from this field alone.
type VoucherStatus string

const (
	StatusDraft     VoucherStatus = "DRAFT"
	StatusPending   VoucherStatus = "PENDING"
	StatusValidated VoucherStatus = "VALIDATED"
	StatusApproved  VoucherStatus = "APPROVED"
	StatusReleased  VoucherStatus = "RELEASED"
	StatusRejected  VoucherStatus = "REJECTED"
	StatusCancelled VoucherStatus = "CANCELLED"
)

// IsTerminal reports whether the status admits no further transitions.
func (s VoucherStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusReleased || s == StatusCancelled
}

// IsReviewable reports whether office review actions may act on the voucher.
func (s VoucherStatus) IsReviewable() bool {
	return s == StatusPending || s == StatusValidated || s == StatusApproved
}

// VoucherItem is a single line item of a voucher. TotalPrice must equal
// Quantity x UnitPrice.
type VoucherItem struct {
	ItemID      string          `json:"itemID"` // Primary Key (e.g., UUID)
	VoucherID   string          `json:"voucherID"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	AuditFields
}

// Voucher represents a disbursement request moving through the approval workflow.
type Voucher struct {
	VoucherID     string          `json:"voucherID"` // Primary Key (e.g., UUID)
	Payee         string          `json:"payee"`
	Address       string          `json:"address"`
	Amount        decimal.Decimal `json:"amount"`
	Particulars   string          `json:"particulars"`
	Tags          []string        `json:"tags"`
	SourceOffices []string        `json:"sourceOffices"`
	Status        VoucherStatus   `json:"status"`
	// CreatorRole is captured at creation and immutable; it keys which
	// approval chain the voucher follows.
	CreatorRole Role          `json:"creatorRole"`
	AssignedTo  *string       `json:"assignedTo,omitempty"` // Optional UserID reference
	Items       []VoucherItem `json:"items,omitempty"`
	AuditFields
}
