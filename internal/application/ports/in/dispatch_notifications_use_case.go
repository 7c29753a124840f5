package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type DispatchNotificationsUseCase interface {
	Execute(ctx context.Context, command dto.DispatchNotificationsCommand) (dto.DispatchNotificationsOutput, *apperrors.AppError)
}
