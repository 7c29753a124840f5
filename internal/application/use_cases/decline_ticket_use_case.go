package use_cases

import (
	"context"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type declineTicketUseCase struct {
	tickets portsout.TicketRepository
}

func NewDeclineTicketUseCase(tickets portsout.TicketRepository) portsin.DeclineTicketUseCase {
	return &declineTicketUseCase{tickets: tickets}
}

// Decline is accepted from either review state: a ticket can be turned
// away before or after validation, but never once a fulfiller holds it.
func (u *declineTicketUseCase) Execute(ctx context.Context, command dto.ReviewTicketCommand) (dto.TicketResource, *apperrors.AppError) {
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
		valueobjects.TicketStatusDeclined,
	)
	if appErr == nil {
		return mapTicketResource(ticket), nil
	}
	if appErr.Type != apperrors.TypeConflict {
		return dto.TicketResource{}, appErr
	}

	ticket, appErr = u.tickets.TransitionStatus(
		ctx,
		command.TicketID,
		valueobjects.TicketStatusValidated,
		valueobjects.TicketStatusDeclined,
	)
	if appErr != nil {
		return dto.TicketResource{}, appErr
	}

	return mapTicketResource(ticket), nil
}
