package models

import "time"

// AuditEntry is a persisted audit trail row. Old/new values are jsonb.
// voucher_id has no foreign key: entries outlive voucher deletion.
type AuditEntry struct {
	EntryID    string                 `json:"entryID"` // Primary Key
	Action     string                 `json:"action"`
	EntityType string                 `json:"entityType"`
	EntityID   string                 `json:"entityID"`
	OldValues  map[string]interface{} `json:"oldValues,omitempty"`
	NewValues  map[string]interface{} `json:"newValues,omitempty"`
	UserID     string                 `json:"userID"`
	UserRole   string                 `json:"userRole"`
	VoucherID  *string                `json:"voucherID,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"`
}
