package out

import (
	"context"

	"ticketpay/internal/domain/entities"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type CryptoTransactionRepository interface {
	Insert(ctx context.Context, transaction entities.CryptoTransaction) (entities.CryptoTransaction, *apperrors.AppError)
	ListByUser(ctx context.Context, userID int64) ([]entities.CryptoTransaction, *apperrors.AppError)
	ListPendingByUser(ctx context.Context, userID int64) ([]entities.CryptoTransaction, *apperrors.AppError)
	Update(
		ctx context.Context,
		id int64,
		status entities.TransactionStatus,
		transactionHash string,
	) (entities.CryptoTransaction, *apperrors.AppError)
}
