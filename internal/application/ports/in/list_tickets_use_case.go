package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type ListTicketsUseCase interface {
	Execute(ctx context.Context, command dto.ListTicketsQuery) (dto.TicketListOutput, *apperrors.AppError)
}
