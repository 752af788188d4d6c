package services

import (
	"context"

	portsrepo "github.com/lgufms/voucher_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/lgufms/voucher_tracking_app/internal/core/ports/services"
	"github.com/lgufms/voucher_tracking_app/internal/dto"
)

// notificationService exposes the per-user notification inbox.
type notificationService struct {
	notificationRepo portsrepo.NotificationRepository
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notificationRepo portsrepo.NotificationRepository) portssvc.NotificationSvcFacade {
	return &notificationService{notificationRepo: notificationRepo}
}

// Ensure notificationService implements the portssvc.NotificationSvcFacade interface
var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

func (s *notificationService) ListForUser(ctx context.Context, userID string, limit int, nextToken *string) (*dto.ListNotificationsResponse, error) {
	notifications, token, err := s.notificationRepo.ListNotificationsByUser(ctx, userID, limit, nextToken)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListNotificationsResponse{
		Notifications: make([]dto.NotificationResponse, 0, len(notifications)),
		NextToken:     token,
	}
	for i := range notifications {
		resp.Notifications = append(resp.Notifications, dto.ToNotificationResponse(&notifications[i]))
	}
	return resp, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID string, userID string) error {
	return s.notificationRepo.MarkNotificationRead(ctx, notificationID, userID)
}
