package models

// Notification is a persisted in-app notification row.
type Notification struct {
	NotificationID string  `json:"notificationID"` // Primary Key
	UserID         string  `json:"userID"`
	VoucherID      *string `json:"voucherID,omitempty"`
	Type           string  `json:"type"`
	Title          string  `json:"title"`
	Message        string  `json:"message"`
	Priority       string  `json:"priority"`
	IsRead         bool    `json:"isRead"`
	AuditFields
}
