package use_cases

import (
	"context"
	"log"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	"ticketpay/internal/domain/entities"
	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type createTicketUseCase struct {
	tickets portsout.TicketRepository
	outbox  portsout.NotificationOutboxRepository
	clock   Clock
	logger  *log.Logger
}

func NewCreateTicketUseCase(
	tickets portsout.TicketRepository,
	outbox portsout.NotificationOutboxRepository,
	clock Clock,
	logger *log.Logger,
) portsin.CreateTicketUseCase {
	if clock == nil {
		clock = NewSystemClock()
	}

	return &createTicketUseCase{
		tickets: tickets,
		outbox:  outbox,
		clock:   clock,
		logger:  logger,
	}
}

func (u *createTicketUseCase) Execute(ctx context.Context, command dto.CreateTicketCommand) (dto.TicketResource, *apperrors.AppError) {
	if u.tickets == nil {
		return dto.TicketResource{}, apperrors.NewInternal(
			"ticket_repository_missing",
			"ticket repository is required",
			nil,
		)
	}

	amountMinor, appErr := valueobjects.ParseAmountMinor(command.Amount)
	if appErr != nil {
		return dto.TicketResource{}, appErr
	}

	ticket, appErr := entities.NewTicket(entities.NewTicketInput{
		FacebookName:  command.FacebookName,
		AmountMinor:   amountMinor,
		Game:          command.Game,
		GameID:        command.GameID,
		PaymentMethod: command.PaymentMethod,
		PaymentTag:    command.PaymentTag,
		AccountName:   command.AccountName,
		ImagePath:     command.ImagePath,
		DomainID:      command.DomainID,
		ChatGroupID:   command.ChatGroupID,
		CreatedAt:     u.clock.NowUTC(),
	})
	if appErr != nil {
		return dto.TicketResource{}, appErr
	}

	created, appErr := u.tickets.Create(ctx, ticket)
	if appErr != nil {
		return dto.TicketResource{}, appErr
	}

	u.enqueueCreatedNotification(ctx, created)

	return mapTicketResource(created), nil
}

// Notification enqueue is best effort; ticket intake never fails on it.
func (u *createTicketUseCase) enqueueCreatedNotification(ctx context.Context, ticket entities.Ticket) {
	if u.outbox == nil || ticket.ChatGroupID == "" {
		return
	}

	_, appErr := u.outbox.Enqueue(ctx, entities.Notification{
		ChatID:        ticket.ChatGroupID,
		Kind:          entities.NotificationKindTicketCreated,
		Text:          buildTicketCreatedMessage(ticket),
		Status:        entities.NotificationStatusPending,
		NextAttemptAt: u.clock.NowUTC(),
		CreatedAt:     u.clock.NowUTC(),
	})
	if appErr != nil && u.logger != nil {
		u.logger.Printf("create_ticket notification enqueue failed ticket_id=%d code=%s", ticket.ID, appErr.Code)
	}
}
