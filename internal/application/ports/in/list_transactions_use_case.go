package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type ListTransactionsUseCase interface {
	Execute(ctx context.Context, command dto.ListTransactionsQuery) ([]dto.TransactionResource, *apperrors.AppError)
}
