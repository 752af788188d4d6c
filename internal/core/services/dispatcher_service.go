package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
	portsrepo "github.com/lgufms/voucher_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/lgufms/voucher_tracking_app/internal/core/ports/services"
	"github.com/lgufms/voucher_tracking_app/internal/middleware"
)

// dispatcherService appends audit entries and fans out in-app notifications.
// The audit write is the system of record; the fan-out is best effort and
// its failures are logged, never propagated.
type dispatcherService struct {
	auditRepo        portsrepo.AuditRepository
	notificationRepo portsrepo.NotificationRepository
	userRepo         portsrepo.UserReader
	timeout          time.Duration
	logger           *slog.Logger
}

// NewDispatcherService creates a new dispatcher service. timeout caps each
// background fan-out; non-positive values fall back to 10 seconds.
func NewDispatcherService(auditRepo portsrepo.AuditRepository, notificationRepo portsrepo.NotificationRepository, userRepo portsrepo.UserReader, timeout time.Duration, logger *slog.Logger) portssvc.DispatcherSvcFacade {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &dispatcherService{
		auditRepo:        auditRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		timeout:          timeout,
		logger:           logger,
	}
}

// Ensure dispatcherService implements the portssvc.DispatcherSvcFacade interface
var _ portssvc.DispatcherSvcFacade = (*dispatcherService)(nil)

func (s *dispatcherService) RecordAndNotify(ctx context.Context, voucher domain.Voucher, action domain.AuditAction, actor domain.Actor, comments string) error {
	now := time.Now().UTC()
	vid := voucher.VoucherID
	entry := domain.AuditEntry{
		EntryID:    uuid.NewString(),
		Action:     action,
		EntityType: "voucher",
		EntityID:   voucher.VoucherID,
		UserID:     actor.UserID,
		UserRole:   actor.Role,
		VoucherID:  &vid,
		CreatedAt:  now,
	}
	if comments != "" {
		entry.NewValues = map[string]interface{}{"comments": comments}
	}

	if err := s.auditRepo.SaveAuditEntry(ctx, entry); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to record audit entry",
			slog.String("voucher_id", voucher.VoucherID),
			slog.String("action", string(action)),
			slog.String("error", err.Error()))
		return err
	}

	s.NotifyAsync(voucher, action, actor, comments)
	return nil
}

func (s *dispatcherService) NotifyAsync(voucher domain.Voucher, action domain.AuditAction, actor domain.Actor, comments string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.notify(ctx, voucher, action, actor, comments); err != nil {
			s.logger.Warn("Notification fan-out failed",
				slog.String("voucher_id", voucher.VoucherID),
				slog.String("action", string(action)),
				slog.String("error", err.Error()))
		}
	}()
}

func (s *dispatcherService) notify(ctx context.Context, voucher domain.Voucher, action domain.AuditAction, actor domain.Actor, comments string) error {
	roles := recipientRoles(voucher.CreatorRole)
	users, err := s.userRepo.FindActiveUsersByRoles(ctx, roles)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	priority := actionPriority(action)
	title := notificationTitle(action)
	message := notificationMessage(voucher, action, comments)
	vid := voucher.VoucherID

	userIDs := make([]string, 0, len(users))
	notifications := make([]domain.Notification, 0, len(users))
	for _, u := range users {
		if u.UserID == actor.UserID {
			continue // the actor already knows what they did
		}
		userIDs = append(userIDs, u.UserID)
		notifications = append(notifications, domain.Notification{
			NotificationID: uuid.NewString(),
			UserID:         u.UserID,
			VoucherID:      &vid,
			Type:           string(action),
			Title:          title,
			Message:        message,
			Priority:       priority,
			IsRead:         false,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actor.UserID,
			},
		})
	}
	if len(notifications) == 0 {
		return nil
	}

	return s.notificationRepo.ReplaceVoucherNotifications(ctx, voucher.VoucherID, userIDs, notifications)
}

// recipientRoles is the fixed distribution list per creator chain: admins
// and the creating office always, plus every office in the voucher's chain.
// Each role appears at most once regardless of overlap.
func recipientRoles(creator domain.Role) []domain.Role {
	chain := []domain.Role{domain.RoleSecretary, domain.RoleMayor, domain.RoleBudget, domain.RoleAccounting, domain.RoleTreasury}
	if creator == domain.RoleGSO {
		chain = []domain.Role{domain.RoleSecretary, domain.RoleMayor, domain.RoleBAC, domain.RoleBudget, domain.RoleAccounting, domain.RoleTreasury}
	}

	roles := make([]domain.Role, 0, len(chain)+2)
	seen := make(map[domain.Role]bool, len(chain)+2)
	for _, r := range append([]domain.Role{domain.RoleAdmin, creator}, chain...) {
		if seen[r] {
			continue
		}
		seen[r] = true
		roles = append(roles, r)
	}
	return roles
}

// actionPriority maps workflow actions to display priority. Terminal money
// movements and rejections are high; intermediate reviews medium; the rest low.
func actionPriority(action domain.AuditAction) domain.NotificationPriority {
	switch action {
	case domain.ActionReject, domain.ActionCheckIssuance, domain.ActionMarkReleased:
		return domain.PriorityHigh
	case domain.ActionReview, domain.ActionSecretaryReview,
		domain.ActionBACReview, domain.ActionBudgetReview, domain.ActionAccountingReview:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

func notificationTitle(action domain.AuditAction) string {
	switch action {
	case domain.ActionCreate:
		return "Voucher created"
	case domain.ActionSubmit:
		return "Voucher submitted for review"
	case domain.ActionSubmitRemarks:
		return "Remarks added to voucher"
	case domain.ActionUpdate:
		return "Voucher updated"
	case domain.ActionSecretaryReview:
		return "Voucher validated by Secretary"
	case domain.ActionReview:
		return "Voucher approved by Mayor"
	case domain.ActionBACReview:
		return "BAC review recorded"
	case domain.ActionBudgetReview:
		return "Budget review recorded"
	case domain.ActionAccountingReview:
		return "Accounting review recorded"
	case domain.ActionCheckIssuance:
		return "Check issued"
	case domain.ActionMarkReleased:
		return "Voucher released"
	case domain.ActionReject:
		return "Voucher rejected"
	default:
		return "Voucher activity"
	}
}

func notificationMessage(voucher domain.Voucher, action domain.AuditAction, comments string) string {
	msg := fmt.Sprintf("%s: voucher for %s (%s)", notificationTitle(action), voucher.Payee, voucher.Amount.StringFixed(2))
	if comments != "" {
		msg = fmt.Sprintf("%s - %s", msg, comments)
	}
	return msg
}
