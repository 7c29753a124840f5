package use_cases

import (
	"context"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type validateTicketUseCase struct {
	tickets portsout.TicketRepository
}

func NewValidateTicketUseCase(tickets portsout.TicketRepository) portsin.ValidateTicketUseCase {
	return &validateTicketUseCase{tickets: tickets}
}

func (u *validateTicketUseCase) Execute(ctx context.Context, command dto.ReviewTicketCommand) (dto.TicketResource, *apperrors.AppError) {
	if u.tickets == nil {
		return dto.TicketResource{}, apperrors.NewInternal(
			"ticket_repository_missing",
			"ticket repository is required",
			nil,
		)
	}

	ticket, appErr := u.tickets.TransitionStatus(
		ctx,
		command.TicketID,
		valueobjects.TicketStatusNew,
		valueobjects.TicketStatusValidated,
	)
	if appErr != nil {
		return dto.TicketResource{}, appErr
	}

	return mapTicketResource(ticket), nil
}
