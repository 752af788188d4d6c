package services

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/lgufms/voucher_tracking_app/internal/apperrors"
	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
	"github.com/lgufms/voucher_tracking_app/internal/core/workflow"
	portsrepo "github.com/lgufms/voucher_tracking_app/internal/core/ports/repositories"
	"github.com/lgufms/voucher_tracking_app/internal/middleware"
)

// snapshotLoader assembles the recorded state one voucher resolution needs.
// Voucher and review services share it so they derive the current reviewer
// from identical inputs.
type snapshotLoader struct {
	voucherRepo portsrepo.VoucherRepositoryFacade
	auditRepo   portsrepo.AuditRepository
	settingRepo portsrepo.SettingRepository
}

// loadSnapshot fetches the voucher's approvals, BAC reviews and audit trail.
// An audit fetch failure is not fatal: the snapshot is returned with
// AuditLoaded=false and the resolver degrades to its Treasury fallback.
func (l *snapshotLoader) loadSnapshot(ctx context.Context, voucher domain.Voucher) (workflow.Snapshot, error) {
	snap := workflow.Snapshot{Voucher: voucher}

	approvals, err := l.voucherRepo.FindApprovalsByVoucherID(ctx, voucher.VoucherID)
	if err != nil {
		return snap, err
	}
	snap.Approvals = approvals

	if workflow.ChainIncludesBAC(voucher.CreatorRole) {
		reviews, err := l.voucherRepo.FindBACReviewsByVoucherID(ctx, voucher.VoucherID)
		if err != nil {
			return snap, err
		}
		snap.BACReviews = reviews
	}

	entries, err := l.auditRepo.FindAuditByVoucherID(ctx, voucher.VoucherID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Audit trail unavailable for reviewer resolution",
			slog.String("voucher_id", voucher.VoucherID), slog.String("error", err.Error()))
		return snap, nil
	}
	snap.AuditTrail = entries
	snap.AuditLoaded = true
	return snap, nil
}

// bacQuorum reads the required BAC approval count, falling back to the
// process default when the setting is missing or malformed.
func (l *snapshotLoader) bacQuorum(ctx context.Context) int {
	setting, err := l.settingRepo.FindSettingByKey(ctx, domain.SettingBACRequiredApprovals)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Warn("Failed to read BAC quorum setting", slog.String("error", err.Error()))
		}
		return domain.DefaultBACRequiredApprovals
	}
	n, err := strconv.Atoi(setting.Value)
	if err != nil || n <= 0 {
		middleware.GetLoggerFromCtx(ctx).Warn("Malformed BAC quorum setting", slog.String("value", setting.Value))
		return domain.DefaultBACRequiredApprovals
	}
	return n
}
