package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type UpdateSettingsUseCase interface {
	Execute(ctx context.Context, command dto.UpdateSettingsCommand) (dto.SettingsResource, *apperrors.AppError)
}
