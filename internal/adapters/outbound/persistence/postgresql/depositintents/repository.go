package depositintents

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"
	"time"

	portsout "ticketpay/internal/application/ports/out"
	"ticketpay/internal/domain/entities"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

const intentColumns = `
  id,
  address_from,
  deposit_address,
  derivation_index,
  amount_minor,
  confirmed,
  transaction_hash,
  created_at,
  confirmed_at
`

type Repository struct {
	db *sql.DB
}

var _ portsout.DepositIntentRepository = (*Repository)(nil)

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) NextDerivationIndex(ctx context.Context) (int64, *apperrors.AppError) {
	const query = `SELECT nextval('app.deposit_derivation_index_seq')`

	var index int64
	if err := r.db.QueryRowContext(ctx, query).Scan(&index); err != nil {
		return 0, apperrors.NewInternal(
			"deposit_index_allocation_failed",
			"failed to allocate deposit derivation index",
			map[string]any{"error": err.Error()},
		)
	}

	return index, nil
}

func (r *Repository) Create(ctx context.Context, intent entities.DepositIntent) (entities.DepositIntent, *apperrors.AppError) {
	const insertSQL = `
INSERT INTO app.deposit_intents (
  address_from,
  deposit_address,
  derivation_index,
  amount_minor,
  confirmed,
  created_at
) VALUES ($1, $2, $3, $4, FALSE, $5)
RETURNING ` + intentColumns

	row := r.db.QueryRowContext(
		ctx,
		insertSQL,
		strings.ToLower(strings.TrimSpace(intent.AddressFrom)),
		strings.ToLower(strings.TrimSpace(intent.DepositAddress)),
		intent.DerivationIndex,
		intent.AmountMinor,
		intent.CreatedAt.UTC(),
	)

	created, _, appErr := scanIntent(row)
	if appErr != nil {
		return entities.DepositIntent{}, apperrors.NewInternal(
			"deposit_intent_insert_failed",
			"failed to insert deposit intent",
			appErr.Details,
		)
	}

	return created, nil
}

func (r *Repository) FindOpenByAddress(ctx context.Context, depositAddress string) (entities.DepositIntent, bool, *apperrors.AppError) {
	query := `
SELECT ` + intentColumns + `
FROM app.deposit_intents
WHERE deposit_address = $1 AND confirmed = FALSE
ORDER BY created_at DESC, id DESC
LIMIT 1
`
	return scanIntent(r.db.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(depositAddress))))
}

func (r *Repository) FindOpenBySender(ctx context.Context, addressFrom string) (entities.DepositIntent, bool, *apperrors.AppError) {
	query := `
SELECT ` + intentColumns + `
FROM app.deposit_intents
WHERE address_from = $1 AND confirmed = FALSE
ORDER BY created_at DESC, id DESC
LIMIT 1
`
	return scanIntent(r.db.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(addressFrom))))
}

func (r *Repository) ListUnconfirmedReported(ctx context.Context, limit int) ([]entities.DepositIntent, *apperrors.AppError) {
	query := `
SELECT ` + intentColumns + `
FROM app.deposit_intents
WHERE confirmed = FALSE AND transaction_hash IS NOT NULL
ORDER BY created_at ASC, id ASC
LIMIT $1
`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, apperrors.NewInternal(
			"deposit_intent_query_failed",
			"failed to list reported deposit intents",
			map[string]any{"error": err.Error()},
		)
	}
	defer rows.Close()

	items := make([]entities.DepositIntent, 0, limit)
	for rows.Next() {
		intent, _, appErr := scanIntent(rows)
		if appErr != nil {
			return nil, appErr
		}
		items = append(items, intent)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternal(
			"deposit_intent_query_failed",
			"failed while iterating deposit intent rows",
			map[string]any{"error": err.Error()},
		)
	}

	return items, nil
}

func (r *Repository) MarkReported(ctx context.Context, id int64, transactionHash string) *apperrors.AppError {
	const updateSQL = `
UPDATE app.deposit_intents
SET transaction_hash = $2
WHERE id = $1 AND confirmed = FALSE
`
	return r.guardedUpdate(ctx, updateSQL, id, strings.ToLower(strings.TrimSpace(transactionHash)))
}

func (r *Repository) Confirm(ctx context.Context, id int64, transactionHash string, confirmedAt time.Time) *apperrors.AppError {
	const updateSQL = `
UPDATE app.deposit_intents
SET confirmed = TRUE,
    transaction_hash = $2,
    confirmed_at = $3
WHERE id = $1 AND confirmed = FALSE
`
	return r.guardedUpdate(ctx, updateSQL, id, strings.ToLower(strings.TrimSpace(transactionHash)), confirmedAt.UTC())
}

func (r *Repository) guardedUpdate(ctx context.Context, query string, id int64, args ...any) *apperrors.AppError {
	allArgs := append([]any{id}, args...)
	result, err := r.db.ExecContext(ctx, query, allArgs...)
	if err != nil {
		return apperrors.NewInternal(
			"deposit_intent_update_failed",
			"failed to update deposit intent",
			map[string]any{"error": err.Error(), "intent_id": id},
		)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternal(
			"deposit_intent_update_failed",
			"failed to verify deposit intent update",
			map[string]any{"error": err.Error(), "intent_id": id},
		)
	}
	if rows != 1 {
		return apperrors.NewConflict(
			"deposit_intent_already_confirmed",
			"deposit intent is already confirmed or missing",
			map[string]any{"intent_id": id},
		)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIntent(row rowScanner) (entities.DepositIntent, bool, *apperrors.AppError) {
	var (
		intent          entities.DepositIntent
		transactionHash sql.NullString
		confirmedAt     sql.NullTime
	)

	err := row.Scan(
		&intent.ID,
		&intent.AddressFrom,
		&intent.DepositAddress,
		&intent.DerivationIndex,
		&intent.AmountMinor,
		&intent.Confirmed,
		&transactionHash,
		&intent.CreatedAt,
		&confirmedAt,
	)
	if stderrors.Is(err, sql.ErrNoRows) {
		return entities.DepositIntent{}, false, nil
	}
	if err != nil {
		return entities.DepositIntent{}, false, apperrors.NewInternal(
			"deposit_intent_query_failed",
			"failed to parse deposit intent row",
			map[string]any{"error": err.Error()},
		)
	}

	if transactionHash.Valid {
		value := transactionHash.String
		intent.TransactionHash = &value
	}
	if confirmedAt.Valid {
		value := confirmedAt.Time.UTC()
		intent.ConfirmedAt = &value
	}
	intent.CreatedAt = intent.CreatedAt.UTC()
	return intent, true, nil
}
