package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type GetWalletUseCase interface {
	Execute(ctx context.Context, command dto.GetWalletQuery) (dto.WalletResource, *apperrors.AppError)
}
