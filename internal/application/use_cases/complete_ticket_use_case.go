package use_cases

import (
	"context"
	"log"
	"strings"
	"time"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	"ticketpay/internal/domain/entities"
	"ticketpay/internal/domain/policies"
	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type completeTicketUseCase struct {
	tickets      portsout.TicketRepository
	wallets      portsout.WalletRepository
	transactions portsout.CryptoTransactionRepository
	outbox       portsout.NotificationOutboxRepository
	clock        Clock
	logger       *log.Logger
}

func NewCompleteTicketUseCase(
	tickets portsout.TicketRepository,
	wallets portsout.WalletRepository,
	transactions portsout.CryptoTransactionRepository,
	outbox portsout.NotificationOutboxRepository,
	clock Clock,
	logger *log.Logger,
) portsin.CompleteTicketUseCase {
	if clock == nil {
		clock = NewSystemClock()
	}

	return &completeTicketUseCase{
		tickets:      tickets,
		wallets:      wallets,
		transactions: transactions,
		outbox:       outbox,
		clock:        clock,
		logger:       logger,
	}
}

func (u *completeTicketUseCase) Execute(ctx context.Context, command dto.CompleteTicketCommand) (dto.CompleteTicketOutput, *apperrors.AppError) {
	if u.tickets == nil || u.wallets == nil {
		return dto.CompleteTicketOutput{}, apperrors.NewInternal(
			"complete_ticket_dependencies_missing",
			"ticket and wallet repositories are required",
			nil,
		)
	}

	imageURLs := make([]string, 0, len(command.ImageURLs))
	for _, raw := range command.ImageURLs {
		if url := strings.TrimSpace(raw); url != "" {
			imageURLs = append(imageURLs, url)
		}
	}
	if len(imageURLs) == 0 {
		return dto.CompleteTicketOutput{}, apperrors.NewValidation(
			"completion_images_missing",
			"Please upload completion images",
			map[string]any{"field": "completion_images"},
		)
	}

	current, appErr := u.tickets.GetByID(ctx, command.TicketID)
	if appErr != nil {
		return dto.CompleteTicketOutput{}, appErr
	}
	if current.FulfillerID == nil || *current.FulfillerID != command.FulfillerID {
		return dto.CompleteTicketOutput{}, apperrors.NewConflict(
			"ticket_not_assigned_to_fulfiller",
			"ticket is not assigned to this fulfiller",
			map[string]any{"ticket_id": command.TicketID},
		)
	}

	now := u.clock.NowUTC()
	ticket, appErr := u.tickets.Complete(ctx, command.TicketID, imageURLs, now)
	if appErr != nil {
		return dto.CompleteTicketOutput{}, appErr
	}

	wallet, appErr := u.wallets.GetByUserAndType(ctx, command.FulfillerID, valueobjects.WalletTypeFulfiller)
	if appErr != nil {
		return dto.CompleteTicketOutput{}, appErr
	}

	creditMinor := policies.FulfillerCreditMinor(ticket.AmountMinor)
	wallet, appErr = u.wallets.Credit(ctx, wallet.ID, creditMinor, now)
	if appErr != nil {
		return dto.CompleteTicketOutput{}, appErr
	}

	u.recordCredit(ctx, ticket, wallet, creditMinor, now)
	u.enqueueCompletedNotification(ctx, ticket, imageURLs)

	return dto.CompleteTicketOutput{
		Ticket:        mapTicketResource(ticket),
		WalletBalance: valueobjects.FormatAmountMinor(wallet.BalanceMinor),
	}, nil
}

func (u *completeTicketUseCase) recordCredit(
	ctx context.Context,
	ticket entities.Ticket,
	wallet entities.Wallet,
	creditMinor int64,
	now time.Time,
) {
	if u.transactions == nil {
		return
	}

	reference := ticket.DisplayID()
	_, appErr := u.transactions.Insert(ctx, entities.CryptoTransaction{
		TransactionType: entities.TransactionTypeCredit,
		Status:          entities.TransactionStatusCompleted,
		AmountMinor:     creditMinor,
		TokenType:       wallet.TokenType,
		UserIDTo:        &wallet.UserID,
		Description:     "Ticket fulfillment credit",
		ReferenceID:     &reference,
		CreatedAt:       now,
	})
	if appErr != nil && u.logger != nil {
		u.logger.Printf("complete_ticket ledger insert failed ticket_id=%d code=%s", ticket.ID, appErr.Code)
	}
}

func (u *completeTicketUseCase) enqueueCompletedNotification(ctx context.Context, ticket entities.Ticket, imageURLs []string) {
	if u.outbox == nil || ticket.ChatGroupID == "" {
		return
	}

	_, appErr := u.outbox.Enqueue(ctx, entities.Notification{
		ChatID:        ticket.ChatGroupID,
		Kind:          entities.NotificationKindTicketCompleted,
		Text:          buildTicketCompletedMessage(ticket),
		PhotoURLs:     imageURLs,
		Status:        entities.NotificationStatusPending,
		NextAttemptAt: u.clock.NowUTC(),
		CreatedAt:     u.clock.NowUTC(),
	})
	if appErr != nil && u.logger != nil {
		u.logger.Printf("complete_ticket notification enqueue failed ticket_id=%d code=%s", ticket.ID, appErr.Code)
	}
}
