package repositories

import (
	"context"

	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
)

// SettingRepository reads named process-wide settings.
type SettingRepository interface {
	FindSettingByKey(ctx context.Context, key string) (*domain.SystemSetting, error)
}
