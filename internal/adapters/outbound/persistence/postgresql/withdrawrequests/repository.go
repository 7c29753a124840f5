package withdrawrequests

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	portsout "ticketpay/internal/application/ports/out"
	"ticketpay/internal/domain/entities"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

const withdrawRequestColumns = `
  id,
  user_id,
  amount_minor,
  to_address,
  status,
  created_at,
  reviewed_at
`

type Repository struct {
	db *sql.DB
}

var _ portsout.WithdrawRequestRepository = (*Repository)(nil)

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, request entities.WithdrawRequest) (entities.WithdrawRequest, *apperrors.AppError) {
	const insertSQL = `
INSERT INTO app.withdraw_requests (user_id, amount_minor, to_address, status, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + withdrawRequestColumns

	row := r.db.QueryRowContext(
		ctx,
		insertSQL,
		request.UserID,
		request.AmountMinor,
		strings.TrimSpace(request.ToAddress),
		string(request.Status),
		request.CreatedAt.UTC(),
	)

	created, appErr := scanWithdrawRequest(row)
	if appErr != nil {
		return entities.WithdrawRequest{}, apperrors.NewInternal(
			"withdraw_request_insert_failed",
			"failed to insert withdraw request",
			appErr.Details,
		)
	}

	return created, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]entities.WithdrawRequest, *apperrors.AppError) {
	query := `
SELECT ` + withdrawRequestColumns + `
FROM app.withdraw_requests
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewInternal(
			"withdraw_request_query_failed",
			"failed to list withdraw requests",
			map[string]any{"error": err.Error()},
		)
	}
	defer rows.Close()

	items := make([]entities.WithdrawRequest, 0, 8)
	for rows.Next() {
		request, appErr := scanWithdrawRequest(rows)
		if appErr != nil {
			return nil, appErr
		}
		items = append(items, request)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternal(
			"withdraw_request_query_failed",
			"failed while iterating withdraw request rows",
			map[string]any{"error": err.Error()},
		)
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWithdrawRequest(row rowScanner) (entities.WithdrawRequest, *apperrors.AppError) {
	var (
		request    entities.WithdrawRequest
		status     string
		reviewedAt sql.NullTime
	)

	err := row.Scan(
		&request.ID,
		&request.UserID,
		&request.AmountMinor,
		&request.ToAddress,
		&status,
		&request.CreatedAt,
		&reviewedAt,
	)
	if stderrors.Is(err, sql.ErrNoRows) {
		return entities.WithdrawRequest{}, apperrors.NewNotFound(
			"withdraw_request_not_found",
			"withdraw request not found",
			nil,
		)
	}
	if err != nil {
		return entities.WithdrawRequest{}, apperrors.NewInternal(
			"withdraw_request_query_failed",
			"failed to parse withdraw request row",
			map[string]any{"error": err.Error()},
		)
	}

	parsedStatus, appErr := entities.ParseWithdrawRequestStatus(status)
	if appErr != nil {
		return entities.WithdrawRequest{}, appErr
	}
	request.Status = parsedStatus
	request.CreatedAt = request.CreatedAt.UTC()
	if reviewedAt.Valid {
		value := reviewedAt.Time.UTC()
		request.ReviewedAt = &value
	}

	return request, nil
}
