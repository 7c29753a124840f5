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

type reportTicketUseCase struct {
	tickets portsout.TicketRepository
	wallets portsout.WalletRepository
	outbox  portsout.NotificationOutboxRepository
	clock   Clock
	logger  *log.Logger
}

func NewReportTicketUseCase(
	tickets portsout.TicketRepository,
	wallets portsout.WalletRepository,
	outbox portsout.NotificationOutboxRepository,
	clock Clock,
	logger *log.Logger,
) portsin.ReportTicketUseCase {
	if clock == nil {
		clock = NewSystemClock()
	}

	return &reportTicketUseCase{
		tickets: tickets,
		wallets: wallets,
		outbox:  outbox,
		clock:   clock,
		logger:  logger,
	}
}

// Report moves the ticket to error and returns the authoritative wallet
// balance so the caller can replace any optimistic estimate.
func (u *reportTicketUseCase) Execute(ctx context.Context, command dto.ReportTicketCommand) (dto.ReportTicketOutput, *apperrors.AppError) {
	if u.tickets == nil || u.wallets == nil {
		return dto.ReportTicketOutput{}, apperrors.NewInternal(
			"report_ticket_dependencies_missing",
			"ticket and wallet repositories are required",
			nil,
		)
	}

	reason, appErr := valueobjects.ParseReportReason(command.Reason)
	if appErr != nil {
		return dto.ReportTicketOutput{}, appErr
	}

	current, appErr := u.tickets.GetByID(ctx, command.TicketID)
	if appErr != nil {
		return dto.ReportTicketOutput{}, appErr
	}
	if current.FulfillerID == nil || *current.FulfillerID != command.FulfillerID {
		return dto.ReportTicketOutput{}, apperrors.NewConflict(
			"ticket_not_assigned_to_fulfiller",
			"ticket is not assigned to this fulfiller",
			map[string]any{"ticket_id": command.TicketID},
		)
	}

	ticket, appErr := u.tickets.Report(ctx, command.TicketID, reason, command.ScreenshotURL)
	if appErr != nil {
		return dto.ReportTicketOutput{}, appErr
	}

	wallet, appErr := u.wallets.GetByUserAndType(ctx, command.FulfillerID, valueobjects.WalletTypeFulfiller)
	if appErr != nil {
		return dto.ReportTicketOutput{}, appErr
	}

	u.enqueueReportedNotification(ctx, ticket, reason, command.ScreenshotURL)

	return dto.ReportTicketOutput{
		Ticket:        mapTicketResource(ticket),
		WalletBalance: valueobjects.FormatAmountMinor(wallet.BalanceMinor),
	}, nil
}

func (u *reportTicketUseCase) enqueueReportedNotification(
	ctx context.Context,
	ticket entities.Ticket,
	reason valueobjects.ReportReason,
	screenshotURL string,
) {
	if u.outbox == nil || ticket.ChatGroupID == "" {
		return
	}

	var photoURLs []string
	if screenshotURL != "" {
		photoURLs = []string{screenshotURL}
	}

	_, appErr := u.outbox.Enqueue(ctx, entities.Notification{
		ChatID:        ticket.ChatGroupID,
		Kind:          entities.NotificationKindTicketReported,
		Text:          buildTicketReportedMessage(ticket, reason),
		PhotoURLs:     photoURLs,
		Status:        entities.NotificationStatusPending,
		NextAttemptAt: u.clock.NowUTC(),
		CreatedAt:     u.clock.NowUTC(),
	})
	if appErr != nil && u.logger != nil {
		u.logger.Printf("report_ticket notification enqueue failed ticket_id=%d code=%s", ticket.ID, appErr.Code)
	}
}
