package out

import (
	"context"
	"time"

	"ticketpay/internal/domain/entities"
	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type WalletRepository interface {
	Create(ctx context.Context, wallet entities.Wallet) (entities.Wallet, *apperrors.AppError)
	GetByID(ctx context.Context, id int64) (entities.Wallet, *apperrors.AppError)
	GetByUserAndType(
		ctx context.Context,
		userID int64,
		walletType valueobjects.WalletType,
	) (entities.Wallet, *apperrors.AppError)
	ListByUser(ctx context.Context, userID int64) ([]entities.Wallet, *apperrors.AppError)
	GetByAddress(ctx context.Context, address string) (entities.Wallet, *apperrors.AppError)
	SetAddress(ctx context.Context, walletID int64, address string, updatedAt time.Time) (entities.Wallet, *apperrors.AppError)
	// Credit and Debit apply the delta atomically. Debit is guarded on
	// sufficient balance and returns a conflict when funds are short.
	Credit(ctx context.Context, walletID, amountMinor int64, updatedAt time.Time) (entities.Wallet, *apperrors.AppError)
	Debit(ctx context.Context, walletID, amountMinor int64, updatedAt time.Time) (entities.Wallet, *apperrors.AppError)
}
