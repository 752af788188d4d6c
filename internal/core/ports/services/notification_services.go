package services

import (
	"context"

	"github.com/lgufms/voucher_tracking_app/internal/dto"
)

// NotificationSvcFacade exposes the per-user notification inbox.
type NotificationSvcFacade interface {
	ListForUser(ctx context.Context, userID string, limit int, nextToken *string) (*dto.ListNotificationsResponse, error)

	// MarkRead marks a notification read; only its owner may.
	MarkRead(ctx context.Context, notificationID string, userID string) error
}
