package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type ReconcileDepositsUseCase interface {
	Execute(ctx context.Context, command dto.ReconcileDepositsCommand) (dto.ReconcileDepositsOutput, *apperrors.AppError)
}
