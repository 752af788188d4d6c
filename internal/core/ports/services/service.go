package services

// ServiceContainer aggregates all service facades for route registration.
type ServiceContainer struct {
	User         UserSvcFacade
	Voucher      VoucherSvcFacade
	Review       ReviewSvcFacade
	Notification NotificationSvcFacade
	Dispatcher   DispatcherSvcFacade
	Token        TokenSvcFacade
	GoogleOAuth  GoogleOAuthSvcFacade
}
