package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type ResolveDepositAddressUseCase interface {
	Execute(ctx context.Context, command dto.ResolveDepositAddressQuery) (dto.DepositAddressResource, *apperrors.AppError)
}
