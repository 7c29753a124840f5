package settings

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	portsout "ticketpay/internal/application/ports/out"
	"ticketpay/internal/domain/entities"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type Repository struct {
	db *sql.DB
}

var _ portsout.SettingsRepository = (*Repository)(nil)

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Get returns defaults for users that never saved settings; sound
// alerts start enabled.
func (r *Repository) Get(ctx context.Context, userID int64) (entities.Setting, *apperrors.AppError) {
	const query = `
SELECT user_id, low_balance_threshold_minor, sound_alerts_enabled, notifications_chat_id, updated_at
FROM app.settings
WHERE user_id = $1
`

	var (
		setting entities.Setting
		chatID  sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&setting.UserID,
		&setting.LowBalanceThreshold,
		&setting.SoundAlertsEnabled,
		&chatID,
		&setting.UpdatedAt,
	)
	if stderrors.Is(err, sql.ErrNoRows) {
		return entities.Setting{
			UserID:             userID,
			SoundAlertsEnabled: true,
		}, nil
	}
	if err != nil {
		return entities.Setting{}, apperrors.NewInternal(
			"settings_query_failed",
			"failed to query settings",
			map[string]any{"error": err.Error()},
		)
	}

	setting.NotificationsChatID = chatID.String
	setting.UpdatedAt = setting.UpdatedAt.UTC()
	return setting, nil
}

func (r *Repository) Upsert(ctx context.Context, setting entities.Setting) (entities.Setting, *apperrors.AppError) {
	const upsertSQL = `
INSERT INTO app.settings (user_id, low_balance_threshold_minor, sound_alerts_enabled, notifications_chat_id, updated_at)
VALUES ($1, $2, $3, NULLIF($4, ''), $5)
ON CONFLICT (user_id) DO UPDATE
SET low_balance_threshold_minor = EXCLUDED.low_balance_threshold_minor,
    sound_alerts_enabled = EXCLUDED.sound_alerts_enabled,
    notifications_chat_id = EXCLUDED.notifications_chat_id,
    updated_at = EXCLUDED.updated_at
RETURNING user_id, low_balance_threshold_minor, sound_alerts_enabled, notifications_chat_id, updated_at
`

	var (
		stored entities.Setting
		chatID sql.NullString
	)
	err := r.db.QueryRowContext(
		ctx,
		upsertSQL,
		setting.UserID,
		setting.LowBalanceThreshold,
		setting.SoundAlertsEnabled,
		strings.TrimSpace(setting.NotificationsChatID),
		setting.UpdatedAt.UTC(),
	).Scan(
		&stored.UserID,
		&stored.LowBalanceThreshold,
		&stored.SoundAlertsEnabled,
		&chatID,
		&stored.UpdatedAt,
	)
	if err != nil {
		return entities.Setting{}, apperrors.NewInternal(
			"settings_upsert_failed",
			"failed to upsert settings",
			map[string]any{"error": err.Error()},
		)
	}

	stored.NotificationsChatID = chatID.String
	stored.UpdatedAt = stored.UpdatedAt.UTC()
	return stored, nil
}
