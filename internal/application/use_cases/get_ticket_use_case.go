package use_cases

import (
	"context"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type getTicketUseCase struct {
	tickets portsout.TicketRepository
}

func NewGetTicketUseCase(tickets portsout.TicketRepository) portsin.GetTicketUseCase {
	return &getTicketUseCase{tickets: tickets}
}

func (u *getTicketUseCase) Execute(ctx context.Context, query dto.GetTicketQuery) (dto.TicketResource, *apperrors.AppError) {
	if u.tickets == nil {
		return dto.TicketResource{}, apperrors.NewInternal(
			"ticket_repository_missing",
			"ticket repository is required",
			nil,
		)
	}

	ticket, appErr := u.tickets.GetByID(ctx, query.ID)
	if appErr != nil {
		return dto.TicketResource{}, appErr
	}

	return mapTicketResource(ticket), nil
}
