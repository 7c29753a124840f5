package out

import (
	"context"
	"time"

	"ticketpay/internal/domain/entities"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type DepositIntentRepository interface {
	// NextDerivationIndex hands out a fresh, never reused index.
	NextDerivationIndex(ctx context.Context) (int64, *apperrors.AppError)
	Create(ctx context.Context, intent entities.DepositIntent) (entities.DepositIntent, *apperrors.AppError)
	// FindOpenByAddress returns the newest unconfirmed intent expecting
	// funds on the given deposit address.
	FindOpenByAddress(ctx context.Context, depositAddress string) (entities.DepositIntent, bool, *apperrors.AppError)
	// FindOpenBySender returns the newest unconfirmed intent created for
	// the given sender address.
	FindOpenBySender(ctx context.Context, addressFrom string) (entities.DepositIntent, bool, *apperrors.AppError)
	ListUnconfirmedReported(ctx context.Context, limit int) ([]entities.DepositIntent, *apperrors.AppError)
	MarkReported(ctx context.Context, id int64, transactionHash string) *apperrors.AppError
	Confirm(ctx context.Context, id int64, transactionHash string, confirmedAt time.Time) *apperrors.AppError
}
