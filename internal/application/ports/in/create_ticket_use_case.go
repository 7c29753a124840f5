package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type CreateTicketUseCase interface {
	Execute(ctx context.Context, command dto.CreateTicketCommand) (dto.TicketResource, *apperrors.AppError)
}
