package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type DeclineTicketUseCase interface {
	Execute(ctx context.Context, command dto.ReviewTicketCommand) (dto.TicketResource, *apperrors.AppError)
}
