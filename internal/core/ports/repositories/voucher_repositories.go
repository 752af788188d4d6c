package repositories

import (
	"context"

	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
)

// ListVouchersFilter narrows a voucher listing. Nil fields are ignored.
type ListVouchersFilter struct {
	Status    *domain.VoucherStatus
	CreatedBy *string
	Limit     int
	NextToken *string
}

// VoucherTransition is the atomic write produced by an accepted workflow
// transition: optional status change, optional approval upsert, optional BAC
// review insert, and exactly one audit entry. The repository applies all of
// it in a single database transaction so the system-of-record guarantee
// cannot be broken by a partial write.
type VoucherTransition struct {
	VoucherID string
	NewStatus *domain.VoucherStatus
	Approval  *domain.Approval
	BACReview *domain.BACReview
	Audit     domain.AuditEntry
}

// VoucherReader defines read operations for voucher data.
type VoucherReader interface {
	// FindVoucherByID retrieves a voucher with its items.
	FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error)

	// ListVouchers retrieves a filtered, token-paginated list of vouchers
	// (without items). It returns the vouchers, a next-page token, and an error.
	ListVouchers(ctx context.Context, filter ListVouchersFilter) ([]domain.Voucher, *string, error)

	// FindApprovalsByVoucherID retrieves all approval records for a voucher.
	FindApprovalsByVoucherID(ctx context.Context, voucherID string) ([]domain.Approval, error)

	// FindBACReviewsByVoucherID retrieves all BAC reviews for a voucher.
	FindBACReviewsByVoucherID(ctx context.Context, voucherID string) ([]domain.BACReview, error)
}

// VoucherWriter defines write operations for voucher data.
type VoucherWriter interface {
	// SaveVoucher persists a voucher with its items and the CREATE audit
	// entry within one transaction.
	SaveVoucher(ctx context.Context, voucher domain.Voucher, audit domain.AuditEntry) error

	// UpdateVoucher updates voucher fields, replaces its items, and appends
	// the UPDATE audit entry within one transaction.
	UpdateVoucher(ctx context.Context, voucher domain.Voucher, audit domain.AuditEntry) error

	// DeleteVoucher removes a voucher, cascading items and approvals but not
	// audit entries, and appends the DELETE audit entry in the same transaction.
	DeleteVoucher(ctx context.Context, voucherID string, audit domain.AuditEntry) error

	// ApplyTransition atomically applies an accepted workflow transition.
	// The approval, if present, is upserted on (voucher_id, level).
	ApplyTransition(ctx context.Context, transition VoucherTransition) error
}

// VoucherRepositoryFacade combines all voucher-related repository interfaces.
type VoucherRepositoryFacade interface {
	VoucherReader
	VoucherWriter
}
