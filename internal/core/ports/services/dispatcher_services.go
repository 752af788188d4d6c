package services

import (
	"context"

	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
)

// DispatcherSvcFacade appends audit records and fans out notifications.
type DispatcherSvcFacade interface {
	// RecordAndNotify appends exactly one audit entry for the action, then
	// triggers the best-effort notification fan-out. The audit write is the
	// system of record; notification failures never propagate.
	RecordAndNotify(ctx context.Context, voucher domain.Voucher, action domain.AuditAction, actor domain.Actor, comments string) error

	// NotifyAsync runs only the notification fan-out, for transitions whose
	// audit entry was already committed inside the transition's database
	// transaction. It returns immediately; the fan-out races a fixed timeout
	// and is abandoned if it loses.
	NotifyAsync(voucher domain.Voucher, action domain.AuditAction, actor domain.Actor, comments string)
}
