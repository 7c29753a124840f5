package out

import (
	"time"

	"ticketpay/internal/domain/entities"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type PasswordHasher interface {
	Hash(password string) (string, *apperrors.AppError)
	Compare(passwordHash, password string) *apperrors.AppError
}

type TokenClaims struct {
	UserID int64
	Role   string
}

type TokenIssuer interface {
	Issue(user entities.User, issuedAt time.Time) (string, *apperrors.AppError)
	Verify(token string) (TokenClaims, *apperrors.AppError)
}
