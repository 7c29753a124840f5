package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type GetSettingsUseCase interface {
	Execute(ctx context.Context, command dto.GetSettingsQuery) (dto.SettingsResource, *apperrors.AppError)
}
