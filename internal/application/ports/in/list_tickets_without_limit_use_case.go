package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type ListTicketsWithoutLimitUseCase interface {
	Execute(ctx context.Context, command dto.ListTicketsWithoutLimitQuery) (dto.TicketListOutput, *apperrors.AppError)
}
