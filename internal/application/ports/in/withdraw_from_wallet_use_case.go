package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type WithdrawFromWalletUseCase interface {
	Execute(ctx context.Context, command dto.WalletTransferCommand) (dto.WalletResource, *apperrors.AppError)
}
