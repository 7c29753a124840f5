package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type UpdateTransactionUseCase interface {
	Execute(ctx context.Context, command dto.UpdateTransactionCommand) (dto.TransactionResource, *apperrors.AppError)
}
