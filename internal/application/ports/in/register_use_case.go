package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type RegisterUseCase interface {
	Execute(ctx context.Context, command dto.RegisterCommand) (dto.AuthOutput, *apperrors.AppError)
}
