package models

// SystemSetting is a persisted named configuration value.
type SystemSetting struct {
	Key   string `json:"key"` // Primary Key
	Value string `json:"value"`
	AuditFields
}
