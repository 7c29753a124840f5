package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type ListWithdrawRequestsUseCase interface {
	Execute(ctx context.Context, query dto.ListWithdrawRequestsQuery) ([]dto.WithdrawRequestResource, *apperrors.AppError)
}
