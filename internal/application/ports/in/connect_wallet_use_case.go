package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type ConnectWalletUseCase interface {
	Execute(ctx context.Context, command dto.ConnectWalletCommand) (dto.WalletResource, *apperrors.AppError)
}
