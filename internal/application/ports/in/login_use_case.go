package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type LoginUseCase interface {
	Execute(ctx context.Context, command dto.LoginCommand) (dto.AuthOutput, *apperrors.AppError)
}
