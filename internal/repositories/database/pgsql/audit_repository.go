package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
	portsrepo "github.com/lgufms/voucher_tracking_app/internal/core/ports/repositories"
	"github.com/lgufms/voucher_tracking_app/internal/models"
	"github.com/lgufms/voucher_tracking_app/internal/utils/mapping"
)

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(db *pgxpool.Pool) portsrepo.AuditRepository {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxAuditRepository implements portsrepo.AuditRepository
var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

// execer is satisfied by both pgxpool.Pool and pgx.Tx, so audit entries can
// be appended standalone or inside an enclosing transaction.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// insertAuditEntry appends one audit trail row. The audit trail is
// append-only: there is no corresponding update or delete statement anywhere
// in this package.
func insertAuditEntry(ctx context.Context, q execer, entry models.AuditEntry) error {
	query := `
		INSERT INTO audit_trail (entry_id, action, entity_type, entity_id, old_values, new_values, user_id, user_role, voucher_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := q.Exec(ctx, query,
		entry.EntryID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.OldValues,
		entry.NewValues,
		entry.UserID,
		entry.UserRole,
		entry.VoucherID,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

func (r *PgxAuditRepository) SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	return insertAuditEntry(ctx, r.Pool, mapping.ToModelAuditEntry(entry))
}

func (r *PgxAuditRepository) FindAuditByVoucherID(ctx context.Context, voucherID string) ([]domain.AuditEntry, error) {
	query := `
		SELECT entry_id, action, entity_type, entity_id, old_values, new_values, user_id, user_role, voucher_id, created_at
		FROM audit_trail
		WHERE voucher_id = $1
		ORDER BY created_at ASC, entry_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit trail for voucher %s: %w", voucherID, err)
	}
	defer rows.Close()

	entries := []domain.AuditEntry{}
	for rows.Next() {
		var m models.AuditEntry
		err := rows.Scan(
			&m.EntryID,
			&m.Action,
			&m.EntityType,
			&m.EntityID,
			&m.OldValues,
			&m.NewValues,
			&m.UserID,
			&m.UserRole,
			&m.VoucherID,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainAuditEntry(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating audit entry rows: %w", rows.Err())
	}

	return entries, nil
}
