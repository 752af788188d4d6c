package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lgufms/voucher_tracking_app/internal/apperrors"
	"github.com/lgufms/voucher_tracking_app/internal/core/access"
	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
	portsrepo "github.com/lgufms/voucher_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/lgufms/voucher_tracking_app/internal/core/ports/services"
	"github.com/lgufms/voucher_tracking_app/internal/core/workflow"
	"github.com/lgufms/voucher_tracking_app/internal/dto"
	"github.com/lgufms/voucher_tracking_app/internal/middleware"
)

var (
	ErrItemTotalMismatch = errors.New("item total price does not equal quantity times unit price")
	ErrNoItems           = errors.New("voucher must have at least one item to be submitted")
	ErrNotDraft          = errors.New("voucher is not in draft status")
	ErrNonPositiveAmount = errors.New("voucher amount must be greater than zero")
	ErrNegativeUnitPrice = errors.New("item unit price must not be negative")
)

// voucherService provides voucher lifecycle operations outside the review chain.
type voucherService struct {
	snapshotLoader
	dispatcher portssvc.DispatcherSvcFacade
}

// NewVoucherService creates a new voucher service.
func NewVoucherService(voucherRepo portsrepo.VoucherRepositoryFacade, auditRepo portsrepo.AuditRepository, settingRepo portsrepo.SettingRepository, dispatcher portssvc.DispatcherSvcFacade) portssvc.VoucherSvcFacade {
	return &voucherService{
		snapshotLoader: snapshotLoader{
			voucherRepo: voucherRepo,
			auditRepo:   auditRepo,
			settingRepo: settingRepo,
		},
		dispatcher: dispatcher,
	}
}

// Ensure voucherService implements the portssvc.VoucherSvcFacade interface
var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

// buildItems validates the line items and materializes them with identifiers
// and audit fields. Every item's total must equal quantity times unit price,
// and unit prices may not go below zero.
func buildItems(reqItems []dto.VoucherItemRequest, voucherID string, actorID string, now time.Time) ([]domain.VoucherItem, error) {
	items := make([]domain.VoucherItem, 0, len(reqItems))
	for _, it := range reqItems {
		if it.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: %s", ErrNegativeUnitPrice, it.Description)
		}
		expected := it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
		if !expected.Equal(it.TotalPrice) {
			return nil, fmt.Errorf("%w: %s", ErrItemTotalMismatch, it.Description)
		}
		items = append(items, domain.VoucherItem{
			ItemID:      uuid.NewString(),
			VoucherID:   voucherID,
			Description: it.Description,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		})
	}
	return items, nil
}

func (s *voucherService) CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, actor domain.Actor) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()
	voucherID := uuid.NewString()

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNonPositiveAmount.Error())
	}

	items, err := buildItems(req.Items, voucherID, actor.UserID, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	voucher := domain.Voucher{
		VoucherID:     voucherID,
		Payee:         req.Payee,
		Address:       req.Address,
		Amount:        req.Amount,
		Particulars:   req.Particulars,
		Tags:          req.Tags,
		SourceOffices: req.SourceOffices,
		Status:        domain.StatusDraft,
		CreatorRole:   actor.Role,
		AssignedTo:    req.AssignedTo,
		Items:         items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	audit := newVoucherAudit(domain.ActionCreate, voucher.VoucherID, actor, now)
	audit.NewValues = map[string]interface{}{
		"payee":  voucher.Payee,
		"amount": voucher.Amount.String(),
		"status": string(voucher.Status),
	}

	if err := s.voucherRepo.SaveVoucher(ctx, voucher, audit); err != nil {
		logger.Error("Failed to save voucher", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Voucher created", slog.String("voucher_id", voucher.VoucherID))
	s.dispatcher.NotifyAsync(voucher, domain.ActionCreate, actor, "")
	return &voucher, nil
}

func (s *voucherService) GetVoucherByID(ctx context.Context, voucherID string, actor domain.Actor) (*domain.Voucher, *workflow.Reviewer, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, nil, err
	}
	if !access.CanView(actor, *voucher) {
		return nil, nil, apperrors.ErrForbidden
	}

	snap, err := s.loadSnapshot(ctx, *voucher)
	if err != nil {
		return nil, nil, err
	}
	reviewer := workflow.ResolveCurrentReviewer(snap, s.bacQuorum(ctx))
	return voucher, reviewer, nil
}

func (s *voucherService) ListVouchers(ctx context.Context, params dto.ListVouchersParams, actor domain.Actor) (*dto.ListVouchersResponse, error) {
	filter := portsrepo.ListVouchersFilter{
		Status:    params.Status,
		Limit:     params.Limit,
		NextToken: params.NextToken,
	}
	// Non-elevated roles only see their own vouchers.
	if !access.IsElevated(actor.Role) {
		filter.CreatedBy = &actor.UserID
	}

	vouchers, nextToken, err := s.voucherRepo.ListVouchers(ctx, filter)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list vouchers", slog.String("error", err.Error()))
		return nil, err
	}

	resp := &dto.ListVouchersResponse{
		Vouchers:  make([]dto.VoucherResponse, 0, len(vouchers)),
		NextToken: nextToken,
	}
	for i := range vouchers {
		resp.Vouchers = append(resp.Vouchers, dto.ToVoucherResponse(&vouchers[i], nil))
	}
	return resp, nil
}

func (s *voucherService) UpdateVoucher(ctx context.Context, voucherID string, req dto.UpdateVoucherRequest, actor domain.Actor) (*domain.Voucher, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit(actor, *voucher) {
		return nil, apperrors.ErrForbidden
	}
	if voucher.Status != domain.StatusDraft {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrNotDraft.Error())
	}
	if req.Amount != nil && !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNonPositiveAmount.Error())
	}

	now := time.Now().UTC()
	oldValues := map[string]interface{}{
		"payee":       voucher.Payee,
		"amount":      voucher.Amount.String(),
		"particulars": voucher.Particulars,
	}

	if req.Payee != nil {
		voucher.Payee = *req.Payee
	}
	if req.Address != nil {
		voucher.Address = *req.Address
	}
	if req.Amount != nil {
		voucher.Amount = *req.Amount
	}
	if req.Particulars != nil {
		voucher.Particulars = *req.Particulars
	}
	if req.Tags != nil {
		voucher.Tags = req.Tags
	}
	if req.SourceOffices != nil {
		voucher.SourceOffices = req.SourceOffices
	}
	if req.AssignedTo != nil {
		voucher.AssignedTo = req.AssignedTo
	}
	if req.Items != nil {
		items, err := buildItems(req.Items, voucher.VoucherID, actor.UserID, now)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		voucher.Items = items
	}
	voucher.LastUpdatedAt = now
	voucher.LastUpdatedBy = actor.UserID

	audit := newVoucherAudit(domain.ActionUpdate, voucher.VoucherID, actor, now)
	audit.OldValues = oldValues
	audit.NewValues = map[string]interface{}{
		"payee":       voucher.Payee,
		"amount":      voucher.Amount.String(),
		"particulars": voucher.Particulars,
	}

	if err := s.voucherRepo.UpdateVoucher(ctx, *voucher, audit); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to update voucher", slog.String("voucher_id", voucherID), slog.String("error", err.Error()))
		return nil, err
	}

	s.dispatcher.NotifyAsync(*voucher, domain.ActionUpdate, actor, "")
	return voucher, nil
}

func (s *voucherService) DeleteVoucher(ctx context.Context, voucherID string, actor domain.Actor) error {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return err
	}
	if !access.CanDelete(actor, *voucher) {
		return apperrors.ErrForbidden
	}

	now := time.Now().UTC()
	audit := newVoucherAudit(domain.ActionDelete, voucherID, actor, now)
	audit.OldValues = map[string]interface{}{
		"payee":  voucher.Payee,
		"amount": voucher.Amount.String(),
		"status": string(voucher.Status),
	}

	if err := s.voucherRepo.DeleteVoucher(ctx, voucherID, audit); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to delete voucher", slog.String("voucher_id", voucherID), slog.String("error", err.Error()))
		return err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Voucher deleted", slog.String("voucher_id", voucherID))
	return nil
}

func (s *voucherService) SubmitVoucher(ctx context.Context, voucherID string, actor domain.Actor) (*domain.Voucher, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if !access.CanSubmit(actor, *voucher) {
		return nil, apperrors.ErrForbidden
	}
	if voucher.Status != domain.StatusDraft {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrNotDraft.Error())
	}
	if len(voucher.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNoItems.Error())
	}

	now := time.Now().UTC()
	newStatus := domain.StatusPending
	audit := newVoucherAudit(domain.ActionSubmit, voucherID, actor, now)
	audit.OldValues = map[string]interface{}{"status": string(voucher.Status)}
	audit.NewValues = map[string]interface{}{"status": string(newStatus)}

	transition := portsrepo.VoucherTransition{
		VoucherID: voucherID,
		NewStatus: &newStatus,
		Audit:     audit,
	}
	if err := s.voucherRepo.ApplyTransition(ctx, transition); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to submit voucher", slog.String("voucher_id", voucherID), slog.String("error", err.Error()))
		return nil, err
	}

	voucher.Status = newStatus
	voucher.LastUpdatedAt = now
	voucher.LastUpdatedBy = actor.UserID

	middleware.GetLoggerFromCtx(ctx).Info("Voucher submitted", slog.String("voucher_id", voucherID))
	s.dispatcher.NotifyAsync(*voucher, domain.ActionSubmit, actor, "")
	return voucher, nil
}

func (s *voucherService) SubmitRemarks(ctx context.Context, voucherID string, remarks string, actor domain.Actor) error {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return err
	}
	if !access.CanView(actor, *voucher) {
		return apperrors.ErrForbidden
	}

	return s.dispatcher.RecordAndNotify(ctx, *voucher, domain.ActionSubmitRemarks, actor, remarks)
}

// newVoucherAudit builds the skeleton audit entry every voucher action records.
func newVoucherAudit(action domain.AuditAction, voucherID string, actor domain.Actor, at time.Time) domain.AuditEntry {
	vid := voucherID
	return domain.AuditEntry{
		EntryID:    uuid.NewString(),
		Action:     action,
		EntityType: "voucher",
		EntityID:   voucherID,
		UserID:     actor.UserID,
		UserRole:   actor.Role,
		VoucherID:  &vid,
		CreatedAt:  at,
	}
}
