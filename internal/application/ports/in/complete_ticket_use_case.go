package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type CompleteTicketUseCase interface {
	Execute(ctx context.Context, command dto.CompleteTicketCommand) (dto.CompleteTicketOutput, *apperrors.AppError)
}
