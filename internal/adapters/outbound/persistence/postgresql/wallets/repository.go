package wallets

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"
	"time"

	portsout "ticketpay/internal/application/ports/out"
	"ticketpay/internal/domain/entities"
	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const walletColumns = `
  id,
  user_id,
  wallet_type,
  token_type,
  balance_minor,
  address,
  created_at,
  updated_at
`

type Repository struct {
	db *sql.DB
}

var _ portsout.WalletRepository = (*Repository)(nil)

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, wallet entities.Wallet) (entities.Wallet, *apperrors.AppError) {
	const insertSQL = `
INSERT INTO app.wallets (
  user_id,
  wallet_type,
  token_type,
  balance_minor,
  address,
  created_at,
  updated_at
) VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $6)
RETURNING ` + walletColumns

	row := r.db.QueryRowContext(
		ctx,
		insertSQL,
		wallet.UserID,
		string(wallet.Type),
		string(wallet.TokenType),
		wallet.BalanceMinor,
		strings.TrimSpace(wallet.Address),
		wallet.CreatedAt.UTC(),
	)

	created, appErr := scanWallet(row)
	if appErr != nil {
		if appErr.Code == "wallet_unique_violation" {
			return entities.Wallet{}, apperrors.NewConflict(
				"wallet_already_exists",
				"wallet of this type already exists for user",
				map[string]any{"user_id": wallet.UserID, "wallet_type": string(wallet.Type)},
			)
		}
		return entities.Wallet{}, appErr
	}

	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (entities.Wallet, *apperrors.AppError) {
	query := `SELECT ` + walletColumns + ` FROM app.wallets WHERE id = $1`
	return scanWallet(r.db.QueryRowContext(ctx, query, id))
}

func (r *Repository) GetByUserAndType(
	ctx context.Context,
	userID int64,
	walletType valueobjects.WalletType,
) (entities.Wallet, *apperrors.AppError) {
	query := `SELECT ` + walletColumns + ` FROM app.wallets WHERE user_id = $1 AND wallet_type = $2`
	return scanWallet(r.db.QueryRowContext(ctx, query, userID, string(walletType)))
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]entities.Wallet, *apperrors.AppError) {
	query := `SELECT ` + walletColumns + ` FROM app.wallets WHERE user_id = $1 ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewInternal(
			"wallet_query_failed",
			"failed to list wallets",
			map[string]any{"error": err.Error()},
		)
	}
	defer rows.Close()

	items := make([]entities.Wallet, 0, 4)
	for rows.Next() {
		wallet, appErr := scanWallet(rows)
		if appErr != nil {
			return nil, appErr
		}
		items = append(items, wallet)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternal(
			"wallet_query_failed",
			"failed while iterating wallet rows",
			map[string]any{"error": err.Error()},
		)
	}

	return items, nil
}

func (r *Repository) GetByAddress(ctx context.Context, address string) (entities.Wallet, *apperrors.AppError) {
	query := `SELECT ` + walletColumns + ` FROM app.wallets WHERE address = $1`
	return scanWallet(r.db.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(address))))
}

func (r *Repository) SetAddress(
	ctx context.Context,
	walletID int64,
	address string,
	updatedAt time.Time,
) (entities.Wallet, *apperrors.AppError) {
	query := `
UPDATE app.wallets
SET address = $2,
    updated_at = $3
WHERE id = $1
RETURNING ` + walletColumns

	wallet, appErr := scanWallet(r.db.QueryRowContext(ctx, query, walletID, strings.TrimSpace(address), updatedAt.UTC()))
	if appErr != nil {
		if appErr.Code == "wallet_unique_violation" {
			return entities.Wallet{}, apperrors.NewConflict(
				"wallet_address_in_use",
				"address is already connected to another wallet",
				map[string]any{"address": address},
			)
		}
		return entities.Wallet{}, appErr
	}

	return wallet, nil
}

func (r *Repository) Credit(
	ctx context.Context,
	walletID, amountMinor int64,
	updatedAt time.Time,
) (entities.Wallet, *apperrors.AppError) {
	query := `
UPDATE app.wallets
SET balance_minor = balance_minor + $2,
    updated_at = $3
WHERE id = $1
RETURNING ` + walletColumns

	return scanWallet(r.db.QueryRowContext(ctx, query, walletID, amountMinor, updatedAt.UTC()))
}

func (r *Repository) Debit(
	ctx context.Context,
	walletID, amountMinor int64,
	updatedAt time.Time,
) (entities.Wallet, *apperrors.AppError) {
	query := `
UPDATE app.wallets
SET balance_minor = balance_minor - $2,
    updated_at = $3
WHERE id = $1
  AND balance_minor >= $2
RETURNING ` + walletColumns

	wallet, appErr := scanWallet(r.db.QueryRowContext(ctx, query, walletID, amountMinor, updatedAt.UTC()))
	if appErr != nil {
		if appErr.Type == apperrors.TypeNotFound {
			if _, getErr := r.GetByID(ctx, walletID); getErr != nil {
				return entities.Wallet{}, getErr
			}
			return entities.Wallet{}, apperrors.NewConflict(
				"wallet_balance_insufficient",
				"wallet balance is insufficient",
				map[string]any{"wallet_id": walletID, "amount_minor": amountMinor},
			)
		}
		return entities.Wallet{}, appErr
	}

	return wallet, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWallet(row rowScanner) (entities.Wallet, *apperrors.AppError) {
	var (
		wallet     entities.Wallet
		walletType string
		tokenType  string
		address    sql.NullString
	)

	err := row.Scan(
		&wallet.ID,
		&wallet.UserID,
		&walletType,
		&tokenType,
		&wallet.BalanceMinor,
		&address,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
	)
	if stderrors.Is(err, sql.ErrNoRows) {
		return entities.Wallet{}, apperrors.NewNotFound(
			"wallet_not_found",
			"wallet not found",
			nil,
		)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return entities.Wallet{}, apperrors.NewConflict(
				"wallet_unique_violation",
				"wallet uniqueness constraint failed",
				map[string]any{"error": err.Error()},
			)
		}
		return entities.Wallet{}, apperrors.NewInternal(
			"wallet_query_failed",
			"failed to parse wallet row",
			map[string]any{"error": err.Error()},
		)
	}

	wallet.Type = valueobjects.WalletType(walletType)
	wallet.TokenType = valueobjects.TokenType(tokenType)
	wallet.Address = address.String
	wallet.CreatedAt = wallet.CreatedAt.UTC()
	wallet.UpdatedAt = wallet.UpdatedAt.UTC()
	return wallet, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !stderrors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == "23505"
}
