package out

import (
	"context"

	"ticketpay/internal/domain/entities"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type UserRepository interface {
	Create(ctx context.Context, user entities.User) (entities.User, *apperrors.AppError)
	GetByID(ctx context.Context, id int64) (entities.User, *apperrors.AppError)
	// GetByLogin matches either username or email.
	GetByLogin(ctx context.Context, login string) (entities.User, *apperrors.AppError)
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) *apperrors.AppError
}
