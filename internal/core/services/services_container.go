package services

import (
	"log/slog"

	portsrepo "github.com/lgufms/voucher_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/lgufms/voucher_tracking_app/internal/core/ports/services"
	"github.com/lgufms/voucher_tracking_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The dispatcher comes first: voucher and review services fan out
	// through it after every accepted transition.
	container.Dispatcher = NewDispatcherService(
		repos.AuditRepo,
		repos.NotificationRepo,
		repos.UserRepo,
		cfg.NotifyDispatchTimeout,
		logger,
	)

	container.Voucher = NewVoucherService(repos.VoucherRepo, repos.AuditRepo, repos.SettingRepo, container.Dispatcher)
	container.Review = NewReviewService(repos.VoucherRepo, repos.AuditRepo, repos.SettingRepo, container.Dispatcher)
	container.Notification = NewNotificationService(repos.NotificationRepo)
	container.User = NewUserService(repos.UserRepo, repos.AuditRepo)
	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container
}
