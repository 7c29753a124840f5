package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type ListWalletsUseCase interface {
	Execute(ctx context.Context, command dto.ListWalletsQuery) ([]dto.WalletResource, *apperrors.AppError)
}
