package domain

// SettingBACRequiredApprovals names the process-wide BAC quorum setting.
const SettingBACRequiredApprovals = "bac_required_approvals"

// DefaultBACRequiredApprovals is the quorum fallback when the setting is
// missing or unreadable.
const DefaultBACRequiredApprovals = 3

// SystemSetting is a named process-wide configuration value.
type SystemSetting struct {
	Key   string `json:"key"` // Primary Key
	Value string `json:"value"`
	AuditFields
}
