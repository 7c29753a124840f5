package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type CreateWithdrawRequestUseCase interface {
	Execute(ctx context.Context, command dto.CreateWithdrawRequestCommand) (dto.WithdrawRequestResource, *apperrors.AppError)
}
