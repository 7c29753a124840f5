package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type CreateEthereumWalletUseCase interface {
	Execute(ctx context.Context, command dto.CreateEthereumWalletCommand) (dto.CreateEthereumWalletOutput, *apperrors.AppError)
}
