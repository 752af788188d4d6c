package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lgufms/voucher_tracking_app/internal/apperrors"
	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
	portsrepo "github.com/lgufms/voucher_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/lgufms/voucher_tracking_app/internal/core/ports/services"
	"github.com/lgufms/voucher_tracking_app/internal/core/workflow"
	"github.com/lgufms/voucher_tracking_app/internal/dto"
	"github.com/lgufms/voucher_tracking_app/internal/middleware"
)

var (
	ErrNotYourTurn       = errors.New("it is not this office's turn to act on the voucher")
	ErrNotReviewable     = errors.New("voucher status does not admit review actions")
	ErrBACNotApplicable  = errors.New("BAC review applies only to GSO-sourced vouchers")
	ErrMayorNotReviewed  = errors.New("mayor approval must precede BAC review")
	ErrBudgetNotReviewed = errors.New("budget review must precede accounting review")
	ErrCheckNotIssued    = errors.New("check issuance must precede release")
	ErrAlreadyRecorded   = errors.New("this action is already recorded for the voucher")
)

// reviewService implements the office review actions. Every mutation goes
// through ApplyTransition so the status change, approval record and audit
// entry land in one database transaction.
type reviewService struct {
	snapshotLoader
	dispatcher portssvc.DispatcherSvcFacade
}

// NewReviewService creates a new review service.
func NewReviewService(voucherRepo portsrepo.VoucherRepositoryFacade, auditRepo portsrepo.AuditRepository, settingRepo portsrepo.SettingRepository, dispatcher portssvc.DispatcherSvcFacade) portssvc.ReviewSvcFacade {
	return &reviewService{
		snapshotLoader: snapshotLoader{
			voucherRepo: voucherRepo,
			auditRepo:   auditRepo,
			settingRepo: settingRepo,
		},
		dispatcher: dispatcher,
	}
}

// Ensure reviewService implements the portssvc.ReviewSvcFacade interface
var _ portssvc.ReviewSvcFacade = (*reviewService)(nil)

// loadForReview fetches the voucher and its snapshot, and verifies the actor
// holds the required role and the voucher is in a reviewable status.
func (s *reviewService) loadForReview(ctx context.Context, voucherID string, actor domain.Actor, required domain.Role) (*domain.Voucher, workflow.Snapshot, error) {
	if actor.Role != required {
		return nil, workflow.Snapshot{}, apperrors.ErrForbidden
	}

	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, workflow.Snapshot{}, err
	}
	if !voucher.Status.IsReviewable() {
		return nil, workflow.Snapshot{}, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrNotReviewable.Error())
	}

	snap, err := s.loadSnapshot(ctx, *voucher)
	if err != nil {
		return nil, workflow.Snapshot{}, err
	}
	return voucher, snap, nil
}

// requireTurn verifies the derived current reviewer matches the acting role.
// The first unmet gate is authoritative; acting early or late is rejected.
func requireTurn(snap workflow.Snapshot, quorum int, role domain.Role) error {
	reviewer := workflow.ResolveCurrentReviewer(snap, quorum)
	if reviewer == nil || reviewer.Role != role {
		return fmt.Errorf("%w: %s", apperrors.ErrSequencing, ErrNotYourTurn.Error())
	}
	return nil
}

// newApproval builds an approval record for the given chain level.
func newApproval(voucherID string, level int, status domain.ApprovalStatus, actor domain.Actor, comments string, at time.Time) *domain.Approval {
	return &domain.Approval{
		ApprovalID: uuid.NewString(),
		VoucherID:  voucherID,
		Level:      level,
		Status:     status,
		ApproverID: actor.UserID,
		Comments:   comments,
		AuditFields: domain.AuditFields{
			CreatedAt:     at,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: at,
			LastUpdatedBy: actor.UserID,
		},
	}
}

// apply commits the transition, updates the local copy and fans out
// notifications.
func (s *reviewService) apply(ctx context.Context, voucher *domain.Voucher, transition portsrepo.VoucherTransition, action domain.AuditAction, actor domain.Actor, comments string) (*domain.Voucher, error) {
	if err := s.voucherRepo.ApplyTransition(ctx, transition); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to apply workflow transition",
			slog.String("voucher_id", voucher.VoucherID),
			slog.String("action", string(action)),
			slog.String("error", err.Error()))
		return nil, err
	}

	if transition.NewStatus != nil {
		voucher.Status = *transition.NewStatus
	}
	voucher.LastUpdatedAt = transition.Audit.CreatedAt
	voucher.LastUpdatedBy = actor.UserID

	middleware.GetLoggerFromCtx(ctx).Info("Workflow transition applied",
		slog.String("voucher_id", voucher.VoucherID),
		slog.String("action", string(action)),
		slog.String("status", string(voucher.Status)))
	s.dispatcher.NotifyAsync(*voucher, action, actor, comments)
	return voucher, nil
}

func (s *reviewService) SecretaryReview(ctx context.Context, voucherID string, req dto.ReviewRequest, actor domain.Actor) (*domain.Voucher, error) {
	voucher, snap, err := s.loadForReview(ctx, voucherID, actor, domain.RoleSecretary)
	if err != nil {
		return nil, err
	}
	if err := requireTurn(snap, s.bacQuorum(ctx), domain.RoleSecretary); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	level, _ := workflow.ApprovalLevelFor(voucher.CreatorRole, domain.RoleSecretary)
	newStatus := domain.StatusValidated
	audit := newVoucherAudit(domain.ActionSecretaryReview, voucherID, actor, now)
	audit.OldValues = map[string]interface{}{"status": string(voucher.Status)}
	audit.NewValues = map[string]interface{}{"status": string(newStatus), "comments": req.Comments}

	return s.apply(ctx, voucher, portsrepo.VoucherTransition{
		VoucherID: voucherID,
		NewStatus: &newStatus,
		Approval:  newApproval(voucherID, level, domain.ApprovalApproved, actor, req.Comments, now),
		Audit:     audit,
	}, domain.ActionSecretaryReview, actor, req.Comments)
}

func (s *reviewService) MayorReview(ctx context.Context, voucherID string, req dto.ReviewRequest, actor domain.Actor) (*domain.Voucher, error) {
	voucher, snap, err := s.loadForReview(ctx, voucherID, actor, domain.RoleMayor)
	if err != nil {
		return nil, err
	}
	if err := requireTurn(snap, s.bacQuorum(ctx), domain.RoleMayor); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	level, _ := workflow.ApprovalLevelFor(voucher.CreatorRole, domain.RoleMayor)
	newStatus := domain.StatusApproved
	audit := newVoucherAudit(domain.ActionReview, voucherID, actor, now)
	audit.OldValues = map[string]interface{}{"status": string(voucher.Status)}
	audit.NewValues = map[string]interface{}{"status": string(newStatus), "comments": req.Comments}

	return s.apply(ctx, voucher, portsrepo.VoucherTransition{
		VoucherID: voucherID,
		NewStatus: &newStatus,
		Approval:  newApproval(voucherID, level, domain.ApprovalApproved, actor, req.Comments, now),
		Audit:     audit,
	}, domain.ActionReview, actor, req.Comments)
}

func (s *reviewService) BACMemberReview(ctx context.Context, voucherID string, req dto.ReviewRequest, actor domain.Actor) (*domain.Voucher, error) {
	voucher, snap, err := s.loadForReview(ctx, voucherID, actor, domain.RoleBAC)
	if err != nil {
		return nil, err
	}
	if !workflow.ChainIncludesBAC(voucher.CreatorRole) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrSequencing, ErrBACNotApplicable.Error())
	}
	// The mayor's approval is the BAC gate's explicit prerequisite even
	// though the turn check would normally imply it.
	if !workflow.HasAuditAction(snap.AuditTrail, domain.ActionReview, domain.RoleMayor) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrSequencing, ErrMayorNotReviewed.Error())
	}
	if err := requireTurn(snap, s.bacQuorum(ctx), domain.RoleBAC); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	audit := newVoucherAudit(domain.ActionBACReview, voucherID, actor, now)
	audit.NewValues = map[string]interface{}{"comments": req.Comments}

	// Advisory: the stored status does not change. Each member's review
	// upserts on (voucher, reviewer) so re-reviews are idempotent.
	review := &domain.BACReview{
		ReviewID:   uuid.NewString(),
		VoucherID:  voucherID,
		ReviewerID: actor.UserID,
		Status:     domain.ApprovalApproved,
		Comments:   req.Comments,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	return s.apply(ctx, voucher, portsrepo.VoucherTransition{
		VoucherID: voucherID,
		BACReview: review,
		Audit:     audit,
	}, domain.ActionBACReview, actor, req.Comments)
}

func (s *reviewService) BudgetReview(ctx context.Context, voucherID string, req dto.ReviewRequest, actor domain.Actor) (*domain.Voucher, error) {
	voucher, snap, err := s.loadForReview(ctx, voucherID, actor, domain.RoleBudget)
	if err != nil {
		return nil, err
	}
	if err := requireTurn(snap, s.bacQuorum(ctx), domain.RoleBudget); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	level, _ := workflow.ApprovalLevelFor(voucher.CreatorRole, domain.RoleBudget)
	audit := newVoucherAudit(domain.ActionBudgetReview, voucherID, actor, now)
	audit.NewValues = map[string]interface{}{"comments": req.Comments}

	return s.apply(ctx, voucher, portsrepo.VoucherTransition{
		VoucherID: voucherID,
		Approval:  newApproval(voucherID, level, domain.ApprovalApproved, actor, req.Comments, now),
		Audit:     audit,
	}, domain.ActionBudgetReview, actor, req.Comments)
}

func (s *reviewService) AccountingReview(ctx context.Context, voucherID string, req dto.ReviewRequest, actor domain.Actor) (*domain.Voucher, error) {
	voucher, snap, err := s.loadForReview(ctx, voucherID, actor, domain.RoleAccounting)
	if err != nil {
		return nil, err
	}
	if !workflow.HasAuditAction(snap.AuditTrail, domain.ActionBudgetReview, domain.RoleBudget) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrSequencing, ErrBudgetNotReviewed.Error())
	}
	if err := requireTurn(snap, s.bacQuorum(ctx), domain.RoleAccounting); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	level, _ := workflow.ApprovalLevelFor(voucher.CreatorRole, domain.RoleAccounting)
	audit := newVoucherAudit(domain.ActionAccountingReview, voucherID, actor, now)
	audit.NewValues = map[string]interface{}{"comments": req.Comments}

	return s.apply(ctx, voucher, portsrepo.VoucherTransition{
		VoucherID: voucherID,
		Approval:  newApproval(voucherID, level, domain.ApprovalApproved, actor, req.Comments, now),
		Audit:     audit,
	}, domain.ActionAccountingReview, actor, req.Comments)
}

func (s *reviewService) IssueCheck(ctx context.Context, voucherID string, req dto.ReviewRequest, actor domain.Actor) (*domain.Voucher, error) {
	voucher, snap, err := s.loadForReview(ctx, voucherID, actor, domain.RoleTreasury)
	if err != nil {
		return nil, err
	}
	if err := requireTurn(snap, s.bacQuorum(ctx), domain.RoleTreasury); err != nil {
		return nil, err
	}
	if workflow.HasAuditAction(snap.AuditTrail, domain.ActionCheckIssuance, domain.RoleTreasury) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrSequencing, ErrAlreadyRecorded.Error())
	}

	now := time.Now().UTC()
	audit := newVoucherAudit(domain.ActionCheckIssuance, voucherID, actor, now)
	audit.NewValues = map[string]interface{}{"comments": req.Comments}

	return s.apply(ctx, voucher, portsrepo.VoucherTransition{
		VoucherID: voucherID,
		Audit:     audit,
	}, domain.ActionCheckIssuance, actor, req.Comments)
}

func (s *reviewService) MarkReleased(ctx context.Context, voucherID string, req dto.ReviewRequest, actor domain.Actor) (*domain.Voucher, error) {
	voucher, snap, err := s.loadForReview(ctx, voucherID, actor, domain.RoleTreasury)
	if err != nil {
		return nil, err
	}
	if err := requireTurn(snap, s.bacQuorum(ctx), domain.RoleTreasury); err != nil {
		return nil, err
	}
	if !workflow.HasAuditAction(snap.AuditTrail, domain.ActionCheckIssuance, domain.RoleTreasury) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrSequencing, ErrCheckNotIssued.Error())
	}

	now := time.Now().UTC()
	newStatus := domain.StatusReleased
	audit := newVoucherAudit(domain.ActionMarkReleased, voucherID, actor, now)
	audit.OldValues = map[string]interface{}{"status": string(voucher.Status)}
	audit.NewValues = map[string]interface{}{"status": string(newStatus), "comments": req.Comments}

	return s.apply(ctx, voucher, portsrepo.VoucherTransition{
		VoucherID: voucherID,
		NewStatus: &newStatus,
		Audit:     audit,
	}, domain.ActionMarkReleased, actor, req.Comments)
}

func (s *reviewService) RejectVoucher(ctx context.Context, voucherID string, req dto.RejectRequest, actor domain.Actor) (*domain.Voucher, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if !voucher.Status.IsReviewable() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrNotReviewable.Error())
	}

	snap, err := s.loadSnapshot(ctx, *voucher)
	if err != nil {
		return nil, err
	}
	// Only the office whose turn it is may reject.
	if err := requireTurn(snap, s.bacQuorum(ctx), actor.Role); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	newStatus := domain.StatusRejected
	audit := newVoucherAudit(domain.ActionReject, voucherID, actor, now)
	audit.OldValues = map[string]interface{}{"status": string(voucher.Status)}
	audit.NewValues = map[string]interface{}{"status": string(newStatus), "reason": req.Reason}

	transition := portsrepo.VoucherTransition{
		VoucherID: voucherID,
		NewStatus: &newStatus,
		Audit:     audit,
	}
	// Record the rejecting office's decision alongside the status change.
	if actor.Role == domain.RoleBAC {
		transition.BACReview = &domain.BACReview{
			ReviewID:   uuid.NewString(),
			VoucherID:  voucherID,
			ReviewerID: actor.UserID,
			Status:     domain.ApprovalRejected,
			Comments:   req.Reason,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actor.UserID,
			},
		}
	} else if level, ok := workflow.ApprovalLevelFor(voucher.CreatorRole, actor.Role); ok {
		transition.Approval = newApproval(voucherID, level, domain.ApprovalRejected, actor, req.Reason, now)
	}

	return s.apply(ctx, voucher, transition, domain.ActionReject, actor, req.Reason)
}
