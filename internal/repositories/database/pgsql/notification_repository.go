package pgsql

import (
	"context"
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

type PgxNotificationRepository struct {
	BaseRepository
}

func newPgxNotificationRepository(db *pgxpool.Pool) portsrepo.NotificationRepository {
	return &PgxNotificationRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxNotificationRepository implements portsrepo.NotificationRepository
var _ portsrepo.NotificationRepository = (*PgxNotificationRepository)(nil)

func (r *PgxNotificationRepository) ReplaceVoucherNotifications(ctx context.Context, voucherID string, userIDs []string, notifications []domain.Notification) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Delete-then-insert keeps each recipient at a single live notification
	// per voucher, so repeated workflow actions never pile up duplicates.
	if len(userIDs) > 0 {
		_, err = tx.Exec(ctx, `DELETE FROM notifications WHERE voucher_id = $1 AND user_id = ANY($2);`, voucherID, userIDs)
		if err != nil {
			return fmt.Errorf("failed to clear prior notifications for voucher %s: %w", voucherID, err)
		}
	}

	if len(notifications) > 0 {
		batch := &pgx.Batch{}
		query := `
			INSERT INTO notifications (notification_id, user_id, voucher_id, type, title, message, priority, is_read, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
		`
		for _, n := range notifications {
			m := mapping.ToModelNotification(n)
			batch.Queue(query,
				m.NotificationID,
				m.UserID,
				m.VoucherID,
				m.Type,
				m.Title,
				m.Message,
				m.Priority,
				m.IsRead,
				m.CreatedAt,
				m.CreatedBy,
				m.LastUpdatedAt,
				m.LastUpdatedBy,
			)
		}
		br := tx.SendBatch(ctx, batch)
		for range notifications {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("failed to insert notification: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to close notification batch: %w", err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxNotificationRepository) ListNotificationsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Notification, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT notification_id, user_id, voucher_id, type, title, message, priority, is_read, created_at, created_by, last_updated_at, last_updated_by
		FROM notifications
		WHERE user_id = $1
	`
	args := []any{userID}

	if nextToken != nil && *nextToken != "" {
		cursorTime, cursorID, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, cursorTime, cursorID)
		query += fmt.Sprintf(" AND (created_at, notification_id) < ($%d, $%d)", len(args)-1, len(args))
	}

	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY created_at DESC, notification_id DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	modelNotifications := []models.Notification{}
	for rows.Next() {
		var m models.Notification
		err := rows.Scan(
			&m.NotificationID,
			&m.UserID,
			&m.VoucherID,
			&m.Type,
			&m.Title,
			&m.Message,
			&m.Priority,
			&m.IsRead,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		modelNotifications = append(modelNotifications, m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating notification rows: %w", rows.Err())
	}

	var token *string
	if len(modelNotifications) > limit {
		modelNotifications = modelNotifications[:limit]
		last := modelNotifications[limit-1]
		t := pagination.EncodeCursor(last.CreatedAt, last.NotificationID)
		token = &t
	}

	notifications := make([]domain.Notification, 0, len(modelNotifications))
	for _, m := range modelNotifications {
		notifications = append(notifications, mapping.ToDomainNotification(m))
	}
	return notifications, token, nil
}

func (r *PgxNotificationRepository) MarkNotificationRead(ctx context.Context, notificationID string, userID string) error {
	query := `
		UPDATE notifications
		SET is_read = TRUE, last_updated_at = NOW(), last_updated_by = $1
		WHERE notification_id = $2 AND user_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, userID, notificationID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
