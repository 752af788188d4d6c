package models

import "github.com/shopspring/decimal"

// VoucherStatus indicates the coarse lifecycle state of a voucher row.
type VoucherStatus string

const (
	Draft     VoucherStatus = "DRAFT"
	Pending   VoucherStatus = "PENDING"
	Validated VoucherStatus = "VALIDATED"
	Approved  VoucherStatus = "APPROVED"
	Released  VoucherStatus = "RELEASED"
	Rejected  VoucherStatus = "REJECTED"
	Cancelled VoucherStatus = "CANCELLED"
)

// Voucher is the persisted voucher row. Tags and SourceOffices map to text[]
// columns; items live in their own table.
type Voucher struct {
	VoucherID     string          `json:"voucherID"` // Primary Key
	Payee         string          `json:"payee"`
	Address       string          `json:"address"`
	Amount        decimal.Decimal `json:"amount"`
	Particulars   string          `json:"particulars"`
	Tags          []string        `json:"tags"`
	SourceOffices []string        `json:"sourceOffices"`
	Status        VoucherStatus   `json:"status"`
	CreatorRole   string          `json:"creatorRole"`
	AssignedTo    *string         `json:"assignedTo,omitempty"` // Nullable FK -> users
	AuditFields
}

// VoucherItem is a persisted line item row; cascade-deleted with its voucher.
type VoucherItem struct {
	ItemID      string          `json:"itemID"` // Primary Key
	VoucherID   string          `json:"voucherID"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	AuditFields
}
