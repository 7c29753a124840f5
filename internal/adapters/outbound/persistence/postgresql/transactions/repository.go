package transactions

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	portsout "ticketpay/internal/application/ports/out"
	"ticketpay/internal/domain/entities"
	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

const transactionColumns = `
  id,
  transaction_type,
  status,
  amount_minor,
  token_type,
  transaction_hash,
  address_from,
  address_to,
  user_id_from,
  user_id_to,
  description,
  reference_id,
  created_at
`

type Repository struct {
	db *sql.DB
}

var _ portsout.CryptoTransactionRepository = (*Repository)(nil)

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ctx context.Context, transaction entities.CryptoTransaction) (entities.CryptoTransaction, *apperrors.AppError) {
	const insertSQL = `
INSERT INTO app.crypto_transactions (
  transaction_type,
  status,
  amount_minor,
  token_type,
  transaction_hash,
  address_from,
  address_to,
  user_id_from,
  user_id_to,
  description,
  reference_id,
  created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING ` + transactionColumns

	row := r.db.QueryRowContext(
		ctx,
		insertSQL,
		string(transaction.TransactionType),
		string(transaction.Status),
		transaction.AmountMinor,
		string(transaction.TokenType),
		nullStringPtr(transaction.TransactionHash),
		nullStringPtr(transaction.AddressFrom),
		nullStringPtr(transaction.AddressTo),
		nullInt64Ptr(transaction.UserIDFrom),
		nullInt64Ptr(transaction.UserIDTo),
		transaction.Description,
		nullStringPtr(transaction.ReferenceID),
		transaction.CreatedAt.UTC(),
	)

	inserted, appErr := scanTransaction(row)
	if appErr != nil {
		return entities.CryptoTransaction{}, apperrors.NewInternal(
			"crypto_transaction_insert_failed",
			"failed to insert crypto transaction",
			appErr.Details,
		)
	}

	return inserted, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]entities.CryptoTransaction, *apperrors.AppError) {
	query := `
SELECT ` + transactionColumns + `
FROM app.crypto_transactions
WHERE user_id_from = $1 OR user_id_to = $1
ORDER BY created_at DESC, id DESC
`
	return r.list(ctx, query, userID)
}

func (r *Repository) ListPendingByUser(ctx context.Context, userID int64) ([]entities.CryptoTransaction, *apperrors.AppError) {
	query := `
SELECT ` + transactionColumns + `
FROM app.crypto_transactions
WHERE status = 'pending'
  AND (user_id_from = $1 OR user_id_to = $1)
ORDER BY created_at ASC, id ASC
`
	return r.list(ctx, query, userID)
}

func (r *Repository) Update(
	ctx context.Context,
	id int64,
	status entities.TransactionStatus,
	transactionHash string,
) (entities.CryptoTransaction, *apperrors.AppError) {
	query := `
UPDATE app.crypto_transactions
SET status = $2,
    transaction_hash = COALESCE(NULLIF($3, ''), transaction_hash)
WHERE id = $1
RETURNING ` + transactionColumns

	transaction, appErr := scanTransaction(r.db.QueryRowContext(ctx, query, id, string(status), strings.TrimSpace(transactionHash)))
	if appErr != nil {
		if appErr.Type == apperrors.TypeNotFound {
			return entities.CryptoTransaction{}, apperrors.NewNotFound(
				"crypto_transaction_not_found",
				"transaction not found",
				map[string]any{"transaction_id": id},
			)
		}
		return entities.CryptoTransaction{}, appErr
	}

	return transaction, nil
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]entities.CryptoTransaction, *apperrors.AppError) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternal(
			"crypto_transaction_query_failed",
			"failed to list crypto transactions",
			map[string]any{"error": err.Error()},
		)
	}
	defer rows.Close()

	items := make([]entities.CryptoTransaction, 0, 16)
	for rows.Next() {
		transaction, appErr := scanTransaction(rows)
		if appErr != nil {
			return nil, appErr
		}
		items = append(items, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternal(
			"crypto_transaction_query_failed",
			"failed while iterating crypto transaction rows",
			map[string]any{"error": err.Error()},
		)
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (entities.CryptoTransaction, *apperrors.AppError) {
	var (
		transaction     entities.CryptoTransaction
		transactionType string
		status          string
		tokenType       string
		transactionHash sql.NullString
		addressFrom     sql.NullString
		addressTo       sql.NullString
		userIDFrom      sql.NullInt64
		userIDTo        sql.NullInt64
		referenceID     sql.NullString
	)

	err := row.Scan(
		&transaction.ID,
		&transactionType,
		&status,
		&transaction.AmountMinor,
		&tokenType,
		&transactionHash,
		&addressFrom,
		&addressTo,
		&userIDFrom,
		&userIDTo,
		&transaction.Description,
		&referenceID,
		&transaction.CreatedAt,
	)
	if stderrors.Is(err, sql.ErrNoRows) {
		return entities.CryptoTransaction{}, apperrors.NewNotFound(
			"crypto_transaction_not_found",
			"transaction not found",
			nil,
		)
	}
	if err != nil {
		return entities.CryptoTransaction{}, apperrors.NewInternal(
			"crypto_transaction_query_failed",
			"failed to parse crypto transaction row",
			map[string]any{"error": err.Error()},
		)
	}

	parsedType, appErr := entities.ParseTransactionType(transactionType)
	if appErr != nil {
		return entities.CryptoTransaction{}, appErr
	}
	parsedStatus, appErr := entities.ParseTransactionStatus(status)
	if appErr != nil {
		return entities.CryptoTransaction{}, appErr
	}

	transaction.TransactionType = parsedType
	transaction.Status = parsedStatus
	transaction.TokenType = valueobjects.TokenType(tokenType)
	transaction.TransactionHash = stringPtr(transactionHash)
	transaction.AddressFrom = stringPtr(addressFrom)
	transaction.AddressTo = stringPtr(addressTo)
	transaction.UserIDFrom = int64Ptr(userIDFrom)
	transaction.UserIDTo = int64Ptr(userIDTo)
	transaction.ReferenceID = stringPtr(referenceID)
	transaction.CreatedAt = transaction.CreatedAt.UTC()
	return transaction, nil
}

func nullStringPtr(value *string) any {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	return *value
}

func nullInt64Ptr(value *int64) any {
	if value == nil {
		return nil
	}
	return *value
}

func stringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	copied := value.String
	return &copied
}

func int64Ptr(value sql.NullInt64) *int64 {
	if !value.Valid {
		return nil
	}
	copied := value.Int64
	return &copied
}
