package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type GroupPendingTransactionsUseCase interface {
	Execute(ctx context.Context, command dto.GroupPendingTransactionsQuery) ([]dto.PendingGroupResource, *apperrors.AppError)
}
