package domain

// NotificationPriority orders notifications for display.
type NotificationPriority string

const (
	PriorityHigh   NotificationPriority = "high"
	PriorityMedium NotificationPriority = "medium"
	PriorityLow    NotificationPriority = "low"
)

// Notification is an ephemeral in-app message keyed by (voucher, user).
// A newer workflow event on the same voucher supersedes (deletes) older
// notifications for the same recipients; only the owner may mark it read.
type Notification struct {
	NotificationID string               `json:"notificationID"` // Primary Key (e.g., UUID)
	UserID         string               `json:"userID"`
	VoucherID      *string              `json:"voucherID,omitempty"`
	Type           string               `json:"type"`
	Title          string               `json:"title"`
	Message        string               `json:"message"`
	Priority       NotificationPriority `json:"priority"`
	IsRead         bool                 `json:"isRead"`
	AuditFields
}
