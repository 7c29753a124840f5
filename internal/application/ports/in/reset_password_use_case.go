package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type ResetPasswordUseCase interface {
	Execute(ctx context.Context, command dto.ResetPasswordCommand) (dto.UserResource, *apperrors.AppError)
}
