package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type CreateWalletUseCase interface {
	Execute(ctx context.Context, command dto.CreateWalletCommand) (dto.WalletResource, *apperrors.AppError)
}
