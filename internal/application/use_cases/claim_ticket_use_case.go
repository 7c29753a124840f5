package use_cases

import (
	"context"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type claimTicketUseCase struct {
	tickets portsout.TicketRepository
}

func NewClaimTicketUseCase(tickets portsout.TicketRepository) portsin.ClaimTicketUseCase {
	return &claimTicketUseCase{tickets: tickets}
}

// Claim re-checks the live status before assigning: only a ticket that
// is still exactly validated may move to processing. Racing fulfillers
// get a conflict, not a reassignment.
func (u *claimTicketUseCase) Execute(ctx context.Context, command dto.ClaimTicketCommand) (dto.TicketResource, *apperrors.AppError) {
	if u.tickets == nil {
		return dto.TicketResource{}, apperrors.NewInternal(
			"ticket_repository_missing",
			"ticket repository is required",
			nil,
		)
	}
	if command.FulfillerID <= 0 {
		return dto.TicketResource{}, apperrors.NewValidation(
			"invalid_request",
			"fulfiller id is required",
			map[string]any{"field": "fulfiller_id"},
		)
	}

	current, appErr := u.tickets.GetByID(ctx, command.TicketID)
	if appErr != nil {
		return dto.TicketResource{}, appErr
	}
	if current.Status != valueobjects.TicketStatusValidated {
		return dto.TicketResource{}, apperrors.NewConflict(
			"ticket_already_assigned",
			"This ticket is already assigned",
			map[string]any{"ticket_id": command.TicketID, "status": current.Status.String()},
		)
	}

	ticket, appErr := u.tickets.Claim(ctx, command.TicketID, command.FulfillerID)
	if appErr != nil {
		if appErr.Type == apperrors.TypeConflict {
			return dto.TicketResource{}, apperrors.NewConflict(
				"ticket_already_assigned",
				"This ticket is already assigned",
				map[string]any{"ticket_id": command.TicketID},
			)
		}
		return dto.TicketResource{}, appErr
	}

	return mapTicketResource(ticket), nil
}
