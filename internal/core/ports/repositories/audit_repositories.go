package repositories

import (
	"context"

	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
)

// AuditRepository defines operations over the append-only audit trail.
// There is deliberately no update or delete.
type AuditRepository interface {
	// SaveAuditEntry appends one audit entry.
	SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error

	// FindAuditByVoucherID retrieves a voucher's audit entries, oldest first.
	FindAuditByVoucherID(ctx context.Context, voucherID string) ([]domain.AuditEntry, error)
}
