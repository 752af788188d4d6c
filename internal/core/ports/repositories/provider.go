package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// layer at startup.
type RepositoryProvider struct {
	VoucherRepo      VoucherRepositoryFacade
	AuditRepo        AuditRepository
	NotificationRepo NotificationRepository
	UserRepo         UserRepositoryFacade
	SettingRepo      SettingRepository
}
