package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type GetTicketUseCase interface {
	Execute(ctx context.Context, command dto.GetTicketQuery) (dto.TicketResource, *apperrors.AppError)
}
