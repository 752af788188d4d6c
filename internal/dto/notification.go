package dto

import (
	"time"

	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
)

// NotificationResponse defines the data returned for a notification.
type NotificationResponse struct {
	NotificationID string                      `json:"notificationID"`
	VoucherID      *string                     `json:"voucherID,omitempty"`
	Type           string                      `json:"type"`
	Title          string                      `json:"title"`
	Message        string                      `json:"message"`
	Priority       domain.NotificationPriority `json:"priority"`
	IsRead         bool                        `json:"isRead"`
	CreatedAt      time.Time                   `json:"createdAt"`
}

// ListNotificationsResponse is the paginated notification listing payload.
type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	NextToken     *string                `json:"nextToken,omitempty"`
}

// ToNotificationResponse converts a domain notification to its response DTO.
func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		VoucherID:      n.VoucherID,
		Type:           n.Type,
		Title:          n.Title,
		Message:        n.Message,
		Priority:       n.Priority,
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt,
	}
}
