package repositories

import (
	"context"

	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
)

// NotificationRepository defines the notification sink and inbox operations.
type NotificationRepository interface {
	// ReplaceVoucherNotifications deletes any existing notifications for the
	// voucher addressed to the given users, then inserts the fresh ones, in
	// one transaction. Each recipient keeps at most one live notification
	// per voucher.
	ReplaceVoucherNotifications(ctx context.Context, voucherID string, userIDs []string, notifications []domain.Notification) error

	// ListNotificationsByUser retrieves a user's notifications, newest first,
	// token paginated.
	ListNotificationsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Notification, *string, error)

	// MarkNotificationRead marks a notification read; only the owning user
	// may do so. Returns ErrNotFound when the notification does not belong
	// to the user.
	MarkNotificationRead(ctx context.Context, notificationID string, userID string) error
}
