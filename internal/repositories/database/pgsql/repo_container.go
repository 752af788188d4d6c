package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/lgufms/voucher_tracking_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		VoucherRepo:      newPgxVoucherRepository(dbPool),
		AuditRepo:        newPgxAuditRepository(dbPool),
		NotificationRepo: newPgxNotificationRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
		SettingRepo:      newPgxSettingRepository(dbPool),
	}
}
