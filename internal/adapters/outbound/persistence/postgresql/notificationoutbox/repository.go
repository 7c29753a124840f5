package notificationoutbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	portsout "ticketpay/internal/application/ports/out"
	"ticketpay/internal/domain/entities"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type Repository struct {
	db *sql.DB
}

var _ portsout.NotificationOutboxRepository = (*Repository)(nil)

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Enqueue(ctx context.Context, notification entities.Notification) (entities.Notification, *apperrors.AppError) {
	const insertSQL = `
INSERT INTO app.notifications (
  chat_id,
  kind,
  body,
  photo_urls,
  delivery_status,
  attempts,
  next_attempt_at,
  created_at
) VALUES ($1, $2, $3, $4, 'pending', 0, $5, $5)
RETURNING id
`

	photoURLs := notification.PhotoURLs
	if photoURLs == nil {
		photoURLs = []string{}
	}
	encoded, err := json.Marshal(photoURLs)
	if err != nil {
		return entities.Notification{}, apperrors.NewInternal(
			"notification_payload_encode_failed",
			"failed to encode notification photo list",
			map[string]any{"error": err.Error()},
		)
	}

	createdAt := notification.CreatedAt.UTC()
	err = r.db.QueryRowContext(
		ctx,
		insertSQL,
		strings.TrimSpace(notification.ChatID),
		string(notification.Kind),
		notification.Text,
		encoded,
		createdAt,
	).Scan(&notification.ID)
	if err != nil {
		return entities.Notification{}, apperrors.NewInternal(
			"notification_insert_failed",
			"failed to enqueue notification",
			map[string]any{"error": err.Error()},
		)
	}

	notification.Status = entities.NotificationStatusPending
	notification.Attempts = 0
	notification.NextAttemptAt = createdAt
	notification.CreatedAt = createdAt
	return notification, nil
}

func (r *Repository) ClaimPendingForDispatch(
	ctx context.Context,
	now time.Time,
	limit int,
	leaseOwner string,
	leaseUntil time.Time,
) ([]entities.Notification, *apperrors.AppError) {
	const query = `
WITH candidates AS (
  SELECT id
  FROM app.notifications
  WHERE delivery_status = 'pending'
    AND btrim(chat_id) <> ''
    AND next_attempt_at <= $1
    AND (lease_until IS NULL OR lease_until <= $1)
  ORDER BY created_at ASC, id ASC
  LIMIT $2
  FOR UPDATE SKIP LOCKED
)
UPDATE app.notifications AS n
SET
  lease_owner = $3,
  lease_until = $4,
  updated_at = $1
FROM candidates
WHERE n.id = candidates.id
RETURNING
  n.id,
  n.chat_id,
  n.kind,
  n.body,
  n.photo_urls,
  n.attempts,
  n.created_at
`

	rows, err := r.db.QueryContext(
		ctx,
		query,
		now.UTC(),
		limit,
		strings.TrimSpace(leaseOwner),
		leaseUntil.UTC(),
	)
	if err != nil {
		return nil, apperrors.NewInternal(
			"notification_outbox_query_failed",
			"failed to claim pending notifications",
			map[string]any{"error": err.Error()},
		)
	}
	defer rows.Close()

	items := make([]entities.Notification, 0, limit)
	for rows.Next() {
		var (
			item      entities.Notification
			kind      string
			photoURLs []byte
		)
		if err := rows.Scan(
			&item.ID,
			&item.ChatID,
			&kind,
			&item.Text,
			&photoURLs,
			&item.Attempts,
			&item.CreatedAt,
		); err != nil {
			return nil, apperrors.NewInternal(
				"notification_outbox_query_failed",
				"failed to parse claimed notification",
				map[string]any{"error": err.Error()},
			)
		}
		if len(photoURLs) > 0 {
			if err := json.Unmarshal(photoURLs, &item.PhotoURLs); err != nil {
				return nil, apperrors.NewInternal(
					"notification_outbox_query_failed",
					"stored notification photo list is invalid",
					map[string]any{"error": err.Error(), "notification_id": item.ID},
				)
			}
		}
		item.Kind = entities.NotificationKind(kind)
		item.Status = entities.NotificationStatusPending
		item.CreatedAt = item.CreatedAt.UTC()
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternal(
			"notification_outbox_query_failed",
			"failed while iterating claimed notifications",
			map[string]any{"error": err.Error()},
		)
	}

	return items, nil
}

func (r *Repository) MarkSent(
	ctx context.Context,
	id int64,
	leaseOwner string,
	sentAt time.Time,
) (bool, *apperrors.AppError) {
	const query = `
UPDATE app.notifications
SET
  delivery_status = 'sent',
  sent_at = $3,
  last_error = NULL,
  lease_owner = NULL,
  lease_until = NULL,
  updated_at = $3
WHERE id = $1
  AND delivery_status = 'pending'
  AND (lease_owner IS NULL OR lease_owner = $2)
`
	return execRowsAffected(ctx, r.db, query, id, strings.TrimSpace(leaseOwner), sentAt.UTC())
}

func (r *Repository) MarkRetry(
	ctx context.Context,
	id int64,
	leaseOwner string,
	attempts int,
	nextAttemptAt time.Time,
	lastError string,
	updatedAt time.Time,
) (bool, *apperrors.AppError) {
	const query = `
UPDATE app.notifications
SET
  attempts = $3,
  next_attempt_at = $4,
  last_error = $5,
  lease_owner = NULL,
  lease_until = NULL,
  updated_at = $6
WHERE id = $1
  AND delivery_status = 'pending'
  AND (lease_owner IS NULL OR lease_owner = $2)
`
	return execRowsAffected(
		ctx,
		r.db,
		query,
		id,
		strings.TrimSpace(leaseOwner),
		attempts,
		nextAttemptAt.UTC(),
		strings.TrimSpace(lastError),
		updatedAt.UTC(),
	)
}

func (r *Repository) MarkFailed(
	ctx context.Context,
	id int64,
	leaseOwner string,
	attempts int,
	lastError string,
	updatedAt time.Time,
) (bool, *apperrors.AppError) {
	const query = `
UPDATE app.notifications
SET
  delivery_status = 'failed',
  attempts = $3,
  last_error = $4,
  lease_owner = NULL,
  lease_until = NULL,
  updated_at = $5
WHERE id = $1
  AND delivery_status = 'pending'
  AND (lease_owner IS NULL OR lease_owner = $2)
`
	return execRowsAffected(
		ctx,
		r.db,
		query,
		id,
		strings.TrimSpace(leaseOwner),
		attempts,
		strings.TrimSpace(lastError),
		updatedAt.UTC(),
	)
}

func execRowsAffected(
	ctx context.Context,
	db *sql.DB,
	query string,
	args ...any,
) (bool, *apperrors.AppError) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, apperrors.NewInternal(
			"notification_outbox_update_failed",
			"failed to update notification",
			map[string]any{"error": err.Error()},
		)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.NewInternal(
			"notification_outbox_update_failed",
			"failed to verify notification update",
			map[string]any{"error": err.Error()},
		)
	}
	return rowsAffected == 1, nil
}
