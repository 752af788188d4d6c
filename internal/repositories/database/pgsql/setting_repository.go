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
)

type PgxSettingRepository struct {
	BaseRepository
}

func newPgxSettingRepository(db *pgxpool.Pool) portsrepo.SettingRepository {
	return &PgxSettingRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxSettingRepository implements portsrepo.SettingRepository
var _ portsrepo.SettingRepository = (*PgxSettingRepository)(nil)

func (r *PgxSettingRepository) FindSettingByKey(ctx context.Context, key string) (*domain.SystemSetting, error) {
	query := `
		SELECT key, value, created_at, created_by, last_updated_at, last_updated_by
		FROM system_settings
		WHERE key = $1;
	`
	var m models.SystemSetting
	err := r.Pool.QueryRow(ctx, query, key).Scan(
		&m.Key,
		&m.Value,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find setting %s: %w", key, err)
	}

	setting := mapping.ToDomainSystemSetting(m)
	return &setting, nil
}
