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

const (
	defaultTicketPageLimit = 10
	maxTicketPageLimit     = 100
)

type listTicketsUseCase struct {
	tickets portsout.TicketRepository
}

func NewListTicketsUseCase(tickets portsout.TicketRepository) portsin.ListTicketsUseCase {
	return &listTicketsUseCase{tickets: tickets}
}

func (u *listTicketsUseCase) Execute(ctx context.Context, query dto.ListTicketsQuery) (dto.TicketListOutput, *apperrors.AppError) {
	if u.tickets == nil {
		return dto.TicketListOutput{}, apperrors.NewInternal(
			"ticket_repository_missing",
			"ticket repository is required",
			nil,
		)
	}

	status := strings.TrimSpace(query.Status)
	if status != "" {
		if _, appErr := valueobjects.ParseTicketStatus(status); appErr != nil {
			return dto.TicketListOutput{}, apperrors.NewValidation(
				"invalid_request",
				"status filter is invalid",
				map[string]any{"status": status},
			)
		}
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = defaultTicketPageLimit
	}
	if limit > maxTicketPageLimit {
		limit = maxTicketPageLimit
	}

	tickets, total, appErr := u.tickets.List(ctx, status, page, limit)
	if appErr != nil {
		return dto.TicketListOutput{}, appErr
	}

	return dto.TicketListOutput{
		Data: mapTicketResources(tickets),
		Meta: listMeta(total, page, limit),
	}, nil
}
