package use_cases

import (
	"context"
	"strings"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type listTicketsWithoutLimitUseCase struct {
	tickets portsout.TicketRepository
}

func NewListTicketsWithoutLimitUseCase(tickets portsout.TicketRepository) portsin.ListTicketsWithoutLimitUseCase {
	return &listTicketsWithoutLimitUseCase{tickets: tickets}
}

func (u *listTicketsWithoutLimitUseCase) Execute(ctx context.Context, query dto.ListTicketsWithoutLimitQuery) (dto.TicketListOutput, *apperrors.AppError) {
	if u.tickets == nil {
		return dto.TicketListOutput{}, apperrors.NewInternal(
			"ticket_repository_missing",
			"ticket repository is required",
			nil,
		)
	}

	statuses := make([]string, 0, len(query.Statuses))
	for _, raw := range query.Statuses {
		status := strings.TrimSpace(raw)
		if status == "" {
			continue
		}
		if _, appErr := valueobjects.ParseTicketStatus(status); appErr != nil {
			return dto.TicketListOutput{}, apperrors.NewValidation(
				"invalid_request",
				"status filter is invalid",
				map[string]any{"status": status},
			)
		}
		statuses = append(statuses, status)
	}

	if len(statuses) == 0 {
		return dto.TicketListOutput{}, apperrors.NewValidation(
			"invalid_request",
			"at least one status is required",
			map[string]any{"field": "status"},
		)
	}

	tickets, appErr := u.tickets.ListByStatuses(ctx, statuses)
	if appErr != nil {
		return dto.TicketListOutput{}, appErr
	}

	resources := mapTicketResources(tickets)

	return dto.TicketListOutput{
		Data: resources,
		Meta: listMeta(int64(len(resources)), 1, len(resources)),
	}, nil
}
