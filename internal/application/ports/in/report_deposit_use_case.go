package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type ReportDepositUseCase interface {
	Execute(ctx context.Context, command dto.ReportDepositCommand) (dto.ReportDepositOutput, *apperrors.AppError)
}
