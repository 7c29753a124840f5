package users

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	portsout "ticketpay/internal/application/ports/out"
	"ticketpay/internal/domain/entities"
	apperrors "ticketpay/internal/shared_kernel/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const userColumns = `
  id,
  username,
  email,
  password_hash,
  role,
  created_at
`

type Repository struct {
	db *sql.DB
}

var _ portsout.UserRepository = (*Repository)(nil)

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, user entities.User) (entities.User, *apperrors.AppError) {
	const insertSQL = `
INSERT INTO app.users (username, email, password_hash, role, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + userColumns

	row := r.db.QueryRowContext(
		ctx,
		insertSQL,
		strings.TrimSpace(user.Username),
		strings.ToLower(strings.TrimSpace(user.Email)),
		user.PasswordHash,
		string(user.Role),
		user.CreatedAt.UTC(),
	)

	created, appErr := scanUser(row)
	if appErr != nil {
		if appErr.Code == "user_unique_violation" {
			return entities.User{}, apperrors.NewConflict(
				"user_already_exists",
				"username or email is already registered",
				map[string]any{"username": user.Username},
			)
		}
		return entities.User{}, appErr
	}

	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (entities.User, *apperrors.AppError) {
	query := `SELECT ` + userColumns + ` FROM app.users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *Repository) GetByLogin(ctx context.Context, login string) (entities.User, *apperrors.AppError) {
	query := `
SELECT ` + userColumns + `
FROM app.users
WHERE username = $1 OR email = lower($1)
`
	return scanUser(r.db.QueryRowContext(ctx, query, strings.TrimSpace(login)))
}

func (r *Repository) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) *apperrors.AppError {
	const updateSQL = `UPDATE app.users SET password_hash = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, updateSQL, id, passwordHash)
	if err != nil {
		return apperrors.NewInternal(
			"user_update_failed",
			"failed to update password hash",
			map[string]any{"error": err.Error()},
		)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternal(
			"user_update_failed",
			"failed to verify password hash update",
			map[string]any{"error": err.Error()},
		)
	}
	if rows != 1 {
		return apperrors.NewNotFound(
			"user_not_found",
			"user not found",
			map[string]any{"user_id": id},
		)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (entities.User, *apperrors.AppError) {
	var (
		user entities.User
		role string
	)

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&role,
		&user.CreatedAt,
	)
	if stderrors.Is(err, sql.ErrNoRows) {
		return entities.User{}, apperrors.NewNotFound(
			"user_not_found",
			"user not found",
			nil,
		)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return entities.User{}, apperrors.NewConflict(
				"user_unique_violation",
				"user uniqueness constraint failed",
				map[string]any{"error": err.Error()},
			)
		}
		return entities.User{}, apperrors.NewInternal(
			"user_query_failed",
			"failed to parse user row",
			map[string]any{"error": err.Error()},
		)
	}

	parsedRole, appErr := entities.ParseUserRole(role)
	if appErr != nil {
		return entities.User{}, appErr
	}
	user.Role = parsedRole
	user.CreatedAt = user.CreatedAt.UTC()
	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !stderrors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == "23505"
}
