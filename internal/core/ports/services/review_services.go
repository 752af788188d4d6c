package services

import (
	"context"

	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
	"github.com/lgufms/voucher_tracking_app/internal/dto"
)

// ReviewSvcFacade exposes the office-specific review actions. Every method
// validates the actor's role, the voucher's status, the derived current
// reviewer, and the sequential prerequisite before mutating anything.
type ReviewSvcFacade interface {
	// SecretaryReview records the level-1 approval; status moves to VALIDATED.
	SecretaryReview(ctx context.Context, voucherID string, req dto.ReviewRequest, actor domain.Actor) (*domain.Voucher, error)

	// MayorReview records the level-2 approval; status moves to APPROVED.
	MayorReview(ctx context.Context, voucherID string, req dto.ReviewRequest, actor domain.Actor) (*domain.Voucher, error)

	// BACMemberReview records one BAC member's advisory review on a
	// GSO-sourced voucher. Stored status does not change.
	BACMemberReview(ctx context.Context, voucherID string, req dto.ReviewRequest, actor domain.Actor) (*domain.Voucher, error)

	// BudgetReview records the Budget office's advisory approval.
	BudgetReview(ctx context.Context, voucherID string, req dto.ReviewRequest, actor domain.Actor) (*domain.Voucher, error)

	// AccountingReview records the Accounting office's advisory approval;
	// requires a prior BUDGET_REVIEW audit entry.
	AccountingReview(ctx context.Context, voucherID string, req dto.ReviewRequest, actor domain.Actor) (*domain.Voucher, error)

	// IssueCheck records Treasury's check issuance.
	IssueCheck(ctx context.Context, voucherID string, req dto.ReviewRequest, actor domain.Actor) (*domain.Voucher, error)

	// MarkReleased records Treasury's release; status moves to RELEASED.
	MarkReleased(ctx context.Context, voucherID string, req dto.ReviewRequest, actor domain.Actor) (*domain.Voucher, error)

	// RejectVoucher lets the office whose turn it is reject; terminal.
	RejectVoucher(ctx context.Context, voucherID string, req dto.RejectRequest, actor domain.Actor) (*domain.Voucher, error)
}
