package services

import (
	"context"

	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
	"github.com/lgufms/voucher_tracking_app/internal/core/workflow"
	"github.com/lgufms/voucher_tracking_app/internal/dto"
)

// VoucherSvcFacade exposes voucher lifecycle operations outside the review chain.
type VoucherSvcFacade interface {
	// CreateVoucher creates a DRAFT voucher with its items and a CREATE audit entry.
	CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, actor domain.Actor) (*domain.Voucher, error)

	// GetVoucherByID retrieves a voucher with items plus its derived current reviewer.
	GetVoucherByID(ctx context.Context, voucherID string, actor domain.Actor) (*domain.Voucher, *workflow.Reviewer, error)

	// ListVouchers retrieves vouchers visible to the actor, token paginated.
	ListVouchers(ctx context.Context, params dto.ListVouchersParams, actor domain.Actor) (*dto.ListVouchersResponse, error)

	// UpdateVoucher edits a DRAFT voucher and appends an UPDATE audit entry.
	UpdateVoucher(ctx context.Context, voucherID string, req dto.UpdateVoucherRequest, actor domain.Actor) (*domain.Voucher, error)

	// DeleteVoucher removes a DRAFT voucher; items and approvals cascade,
	// audit entries remain.
	DeleteVoucher(ctx context.Context, voucherID string, actor domain.Actor) error

	// SubmitVoucher moves a DRAFT voucher with at least one item to PENDING.
	SubmitVoucher(ctx context.Context, voucherID string, actor domain.Actor) (*domain.Voucher, error)

	// SubmitRemarks appends follow-up remarks to a voucher's audit trail.
	SubmitRemarks(ctx context.Context, voucherID string, remarks string, actor domain.Actor) error
}
