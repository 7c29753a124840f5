package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type ClaimTicketUseCase interface {
	Execute(ctx context.Context, command dto.ClaimTicketCommand) (dto.TicketResource, *apperrors.AppError)
}
