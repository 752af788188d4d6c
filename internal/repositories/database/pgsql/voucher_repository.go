package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lgufms/voucher_tracking_app/internal/apperrors"
	"github.com/lgufms/voucher_tracking_app/internal/core/domain"
	portsrepo "github.com/lgufms/voucher_tracking_app/internal/core/ports/repositories"
	"github.com/lgufms/voucher_tracking_app/internal/models"
	"github.com/lgufms/voucher_tracking_app/internal/utils/mapping"
	"github.com/lgufms/voucher_tracking_app/internal/utils/pagination"
)

type PgxVoucherRepository struct {
	BaseRepository
}

func newPgxVoucherRepository(db *pgxpool.Pool) portsrepo.VoucherRepositoryFacade {
	return &PgxVoucherRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxVoucherRepository implements portsrepo.VoucherRepositoryFacade
var _ portsrepo.VoucherRepositoryFacade = (*PgxVoucherRepository)(nil)

const voucherColumns = `voucher_id, payee, address, amount, particulars, tags, source_offices, status, creator_role, assigned_to, created_at, created_by, last_updated_at, last_updated_by`

func scanVoucher(row pgx.Row) (models.Voucher, error) {
	var m models.Voucher
	err := row.Scan(
		&m.VoucherID,
		&m.Payee,
		&m.Address,
		&m.Amount,
		&m.Particulars,
		&m.Tags,
		&m.SourceOffices,
		&m.Status,
		&m.CreatorRole,
		&m.AssignedTo,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher, audit domain.AuditEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelVoucher := mapping.ToModelVoucher(voucher)
	query := `
		INSERT INTO vouchers (` + voucherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, query,
		modelVoucher.VoucherID,
		modelVoucher.Payee,
		modelVoucher.Address,
		modelVoucher.Amount,
		modelVoucher.Particulars,
		modelVoucher.Tags,
		modelVoucher.SourceOffices,
		modelVoucher.Status,
		modelVoucher.CreatorRole,
		modelVoucher.AssignedTo,
		modelVoucher.CreatedAt,
		modelVoucher.CreatedBy,
		modelVoucher.LastUpdatedAt,
		modelVoucher.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert voucher: %w", err)
	}

	if err := insertVoucherItems(ctx, tx, mapping.ToModelVoucherItems(voucher.Items)); err != nil {
		return err
	}

	if err := insertAuditEntry(ctx, tx, mapping.ToModelAuditEntry(audit)); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func insertVoucherItems(ctx context.Context, tx pgx.Tx, items []models.VoucherItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO voucher_items (item_id, voucher_id, description, quantity, unit, unit_price, total_price, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, item := range items {
		batch.Queue(query,
			item.ItemID,
			item.VoucherID,
			item.Description,
			item.Quantity,
			item.Unit,
			item.UnitPrice,
			item.TotalPrice,
			item.CreatedAt,
			item.CreatedBy,
			item.LastUpdatedAt,
			item.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert voucher item: %w", err)
		}
	}
	return nil
}

func (r *PgxVoucherRepository) UpdateVoucher(ctx context.Context, voucher domain.Voucher, audit domain.AuditEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelVoucher := mapping.ToModelVoucher(voucher)
	query := `
		UPDATE vouchers
		SET payee = $1, address = $2, amount = $3, particulars = $4, tags = $5, source_offices = $6, assigned_to = $7, last_updated_at = $8, last_updated_by = $9
		WHERE voucher_id = $10;
	`
	cmdTag, err := tx.Exec(ctx, query,
		modelVoucher.Payee,
		modelVoucher.Address,
		modelVoucher.Amount,
		modelVoucher.Particulars,
		modelVoucher.Tags,
		modelVoucher.SourceOffices,
		modelVoucher.AssignedTo,
		modelVoucher.LastUpdatedAt,
		modelVoucher.LastUpdatedBy,
		modelVoucher.VoucherID,
	)
	if err != nil {
		return fmt.Errorf("failed to update voucher: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	// Items are replaced wholesale on update.
	if _, err := tx.Exec(ctx, `DELETE FROM voucher_items WHERE voucher_id = $1;`, modelVoucher.VoucherID); err != nil {
		return fmt.Errorf("failed to clear voucher items: %w", err)
	}
	if err := insertVoucherItems(ctx, tx, mapping.ToModelVoucherItems(voucher.Items)); err != nil {
		return err
	}

	if err := insertAuditEntry(ctx, tx, mapping.ToModelAuditEntry(audit)); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxVoucherRepository) DeleteVoucher(ctx context.Context, voucherID string, audit domain.AuditEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Items, approvals and BAC reviews cascade via FK. Audit rows carry no
	// FK and survive the deletion.
	cmdTag, err := tx.Exec(ctx, `DELETE FROM vouchers WHERE voucher_id = $1;`, voucherID)
	if err != nil {
		return fmt.Errorf("failed to delete voucher %s: %w", voucherID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := insertAuditEntry(ctx, tx, mapping.ToModelAuditEntry(audit)); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxVoucherRepository) ApplyTransition(ctx context.Context, transition portsrepo.VoucherTransition) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if transition.NewStatus != nil {
		query := `
			UPDATE vouchers
			SET status = $1, last_updated_at = $2, last_updated_by = $3
			WHERE voucher_id = $4;
		`
		cmdTag, err := tx.Exec(ctx, query,
			string(*transition.NewStatus),
			transition.Audit.CreatedAt,
			transition.Audit.UserID,
			transition.VoucherID,
		)
		if err != nil {
			return fmt.Errorf("failed to update voucher status: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
	}

	if transition.Approval != nil {
		m := mapping.ToModelApproval(*transition.Approval)
		query := `
			INSERT INTO approvals (approval_id, voucher_id, level, status, approver_id, comments, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (voucher_id, level) DO UPDATE SET
				status = EXCLUDED.status,
				approver_id = EXCLUDED.approver_id,
				comments = EXCLUDED.comments,
				last_updated_at = EXCLUDED.last_updated_at,
				last_updated_by = EXCLUDED.last_updated_by;
		`
		_, err := tx.Exec(ctx, query,
			m.ApprovalID,
			m.VoucherID,
			m.Level,
			m.Status,
			m.ApproverID,
			m.Comments,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert approval: %w", err)
		}
	}

	if transition.BACReview != nil {
		m := mapping.ToModelBACReview(*transition.BACReview)
		query := `
			INSERT INTO bac_reviews (review_id, voucher_id, reviewer_id, status, comments, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (voucher_id, reviewer_id) DO UPDATE SET
				status = EXCLUDED.status,
				comments = EXCLUDED.comments,
				last_updated_at = EXCLUDED.last_updated_at,
				last_updated_by = EXCLUDED.last_updated_by;
		`
		_, err := tx.Exec(ctx, query,
			m.ReviewID,
			m.VoucherID,
			m.ReviewerID,
			m.Status,
			m.Comments,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert BAC review: %w", err)
		}
	}

	if err := insertAuditEntry(ctx, tx, mapping.ToModelAuditEntry(transition.Audit)); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE voucher_id = $1;`
	modelVoucher, err := scanVoucher(r.Pool.QueryRow(ctx, query, voucherID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find voucher by ID %s: %w", voucherID, err)
	}

	items, err := r.findItemsByVoucherID(ctx, voucherID)
	if err != nil {
		return nil, err
	}

	domainVoucher := mapping.ToDomainVoucher(modelVoucher, items)
	return &domainVoucher, nil
}

func (r *PgxVoucherRepository) findItemsByVoucherID(ctx context.Context, voucherID string) ([]models.VoucherItem, error) {
	query := `
		SELECT item_id, voucher_id, description, quantity, unit, unit_price, total_price, created_at, created_by, last_updated_at, last_updated_by
		FROM voucher_items
		WHERE voucher_id = $1
		ORDER BY created_at ASC, item_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to query voucher items: %w", err)
	}
	defer rows.Close()

	items := []models.VoucherItem{}
	for rows.Next() {
		var m models.VoucherItem
		err := rows.Scan(
			&m.ItemID,
			&m.VoucherID,
			&m.Description,
			&m.Quantity,
			&m.Unit,
			&m.UnitPrice,
			&m.TotalPrice,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan voucher item row: %w", err)
		}
		items = append(items, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating voucher item rows: %w", rows.Err())
	}

	return items, nil
}

func (r *PgxVoucherRepository) ListVouchers(ctx context.Context, filter portsrepo.ListVouchersFilter) ([]domain.Voucher, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE 1=1`
	args := []any{}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.CreatedBy != nil {
		args = append(args, *filter.CreatedBy)
		query += fmt.Sprintf(" AND created_by = $%d", len(args))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		cursorTime, cursorID, err := pagination.DecodeCursor(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, cursorTime, cursorID)
		query += fmt.Sprintf(" AND (created_at, voucher_id) < ($%d, $%d)", len(args)-1, len(args))
	}

	// Fetch one extra row to know whether a next page exists.
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY created_at DESC, voucher_id DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query vouchers: %w", err)
	}
	defer rows.Close()

	modelVouchers := []models.Voucher{}
	for rows.Next() {
		m, err := scanVoucher(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan voucher row: %w", err)
		}
		modelVouchers = append(modelVouchers, m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating voucher rows: %w", rows.Err())
	}

	var nextToken *string
	if len(modelVouchers) > limit {
		modelVouchers = modelVouchers[:limit]
		last := modelVouchers[limit-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.VoucherID)
		nextToken = &token
	}

	vouchers := make([]domain.Voucher, 0, len(modelVouchers))
	for _, m := range modelVouchers {
		vouchers = append(vouchers, mapping.ToDomainVoucher(m, nil))
	}
	return vouchers, nextToken, nil
}

func (r *PgxVoucherRepository) FindApprovalsByVoucherID(ctx context.Context, voucherID string) ([]domain.Approval, error) {
	query := `
		SELECT approval_id, voucher_id, level, status, approver_id, comments, created_at, created_by, last_updated_at, last_updated_by
		FROM approvals
		WHERE voucher_id = $1
		ORDER BY level ASC;
	`
	rows, err := r.Pool.Query(ctx, query, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to query approvals: %w", err)
	}
	defer rows.Close()

	approvals := []domain.Approval{}
	for rows.Next() {
		var m models.Approval
		err := rows.Scan(
			&m.ApprovalID,
			&m.VoucherID,
			&m.Level,
			&m.Status,
			&m.ApproverID,
			&m.Comments,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval row: %w", err)
		}
		approvals = append(approvals, mapping.ToDomainApproval(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating approval rows: %w", rows.Err())
	}

	return approvals, nil
}

func (r *PgxVoucherRepository) FindBACReviewsByVoucherID(ctx context.Context, voucherID string) ([]domain.BACReview, error) {
	query := `
		SELECT review_id, voucher_id, reviewer_id, status, comments, created_at, created_by, last_updated_at, last_updated_by
		FROM bac_reviews
		WHERE voucher_id = $1
		ORDER BY created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, voucherID)
	if err != nil {
		return nil, fmt.Errorf("failed to query BAC reviews: %w", err)
	}
	defer rows.Close()

	reviews := []domain.BACReview{}
	for rows.Next() {
		var m models.BACReview
		err := rows.Scan(
			&m.ReviewID,
			&m.VoucherID,
			&m.ReviewerID,
			&m.Status,
			&m.Comments,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan BAC review row: %w", err)
		}
		reviews = append(reviews, mapping.ToDomainBACReview(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating BAC review rows: %w", rows.Err())
	}

	return reviews, nil
}
