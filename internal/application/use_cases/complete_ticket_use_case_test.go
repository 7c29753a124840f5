//go:build !integration

package use_cases

import (
	"context"
	"testing"
	"time"

	"ticketpay/internal/application/dto"
	"ticketpay/internal/domain/entities"
	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

func assignedTicket(id, fulfillerID int64) entities.Ticket {
	ticket := validatedTicket(id)
	ticket.Status = valueobjects.TicketStatusProcessing
	ticket.FulfillerID = &fulfillerID
	ticket.ChatGroupID = "-100200300"
	return ticket
}

func TestCompleteTicketUseCaseRequiresImages(t *testing.T) {
	fakeTickets := &fakeTicketRepository{getByIDResult: assignedTicket(5, 7)}
	useCase := NewCompleteTicketUseCase(fakeTickets, &fakeWalletRepository{}, nil, nil, fixedClock{}, nil)

	_, appErr := useCase.Execute(context.Background(), dto.CompleteTicketCommand{
		TicketID:    5,
		FulfillerID: 7,
		ImageURLs:   []string{"", "   "},
	})

	if appErr == nil {
		t.Fatal("expected validation error")
	}
	if appErr.Code != "completion_images_missing" {
		t.Fatalf("expected completion_images_missing, got %s", appErr.Code)
	}
	if appErr.Message != "Please upload completion images" {
		t.Fatalf("unexpected message %q", appErr.Message)
	}
	if fakeTickets.completes != 0 {
		t.Fatalf("expected no completion attempt, got %d", fakeTickets.completes)
	}
}

func TestCompleteTicketUseCaseRejectsWrongFulfiller(t *testing.T) {
	fakeTickets := &fakeTicketRepository{getByIDResult: assignedTicket(5, 7)}
	useCase := NewCompleteTicketUseCase(fakeTickets, &fakeWalletRepository{}, nil, nil, fixedClock{}, nil)

	_, appErr := useCase.Execute(context.Background(), dto.CompleteTicketCommand{
		TicketID:    5,
		FulfillerID: 9,
		ImageURLs:   []string{"https://cdn.example.com/proof.png"},
	})

	if appErr == nil || appErr.Code != "ticket_not_assigned_to_fulfiller" {
		t.Fatalf("expected ticket_not_assigned_to_fulfiller, got %v", appErr)
	}
	if appErr.Type != apperrors.TypeConflict {
		t.Fatalf("expected conflict type, got %s", appErr.Type)
	}
	if fakeTickets.completes != 0 {
		t.Fatalf("expected no completion attempt, got %d", fakeTickets.completes)
	}
}

func TestCompleteTicketUseCaseCreditsFulfillerMargin(t *testing.T) {
	now := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)
	completed := assignedTicket(5, 7)
	completed.Status = valueobjects.TicketStatusCompleted
	completed.CompletionImages = []string{"https://cdn.example.com/proof.png"}
	completed.CompletedAt = &now

	fakeTickets := &fakeTicketRepository{
		getByIDResult:  assignedTicket(5, 7),
		completeResult: completed,
	}
	fakeWallets := &fakeWalletRepository{
		getByUserAndTypeResult: entities.Wallet{
			ID:           3,
			UserID:       7,
			Type:         valueobjects.WalletTypeFulfiller,
			TokenType:    valueobjects.TokenTypeUSDC,
			BalanceMinor: 50000000,
		},
		creditResult: entities.Wallet{
			ID:           3,
			UserID:       7,
			Type:         valueobjects.WalletTypeFulfiller,
			TokenType:    valueobjects.TokenTypeUSDC,
			BalanceMinor: 153000000,
		},
	}
	fakeTransactions := &fakeTransactionRepository{}
	fakeOutbox := &fakeNotificationOutbox{}
	useCase := NewCompleteTicketUseCase(fakeTickets, fakeWallets, fakeTransactions, fakeOutbox, fixedClock{now: now}, nil)

	output, appErr := useCase.Execute(context.Background(), dto.CompleteTicketCommand{
		TicketID:    5,
		FulfillerID: 7,
		ImageURLs:   []string{"https://cdn.example.com/proof.png"},
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	if fakeWallets.lastWalletType != valueobjects.WalletTypeFulfiller {
		t.Fatalf("expected fulfiller wallet lookup, got %s", fakeWallets.lastWalletType)
	}
	// 100 USDC ticket credits 103% to the fulfiller.
	if fakeWallets.lastCreditAmount != 103000000 {
		t.Fatalf("expected credit of 103000000, got %d", fakeWallets.lastCreditAmount)
	}
	if output.WalletBalance != "153" {
		t.Fatalf("expected balance 153, got %s", output.WalletBalance)
	}
	if output.Ticket.Status != "completed" {
		t.Fatalf("expected completed status, got %s", output.Ticket.Status)
	}

	if len(fakeTransactions.inserts) != 1 {
		t.Fatalf("expected one ledger row, got %d", len(fakeTransactions.inserts))
	}
	row := fakeTransactions.inserts[0]
	if row.TransactionType != entities.TransactionTypeCredit || row.AmountMinor != 103000000 {
		t.Fatalf("unexpected ledger row %+v", row)
	}

	if len(fakeOutbox.enqueued) != 1 {
		t.Fatalf("expected one notification, got %d", len(fakeOutbox.enqueued))
	}
	notification := fakeOutbox.enqueued[0]
	if notification.ChatID != "-100200300" {
		t.Fatalf("expected chat group id on notification, got %s", notification.ChatID)
	}
	if len(notification.PhotoURLs) != 1 {
		t.Fatalf("expected completion images on notification, got %v", notification.PhotoURLs)
	}
}

func TestCompleteTicketUseCaseToleratesLedgerFailure(t *testing.T) {
	now := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)
	completed := assignedTicket(5, 7)
	completed.Status = valueobjects.TicketStatusCompleted

	fakeTickets := &fakeTicketRepository{
		getByIDResult:  assignedTicket(5, 7),
		completeResult: completed,
	}
	fakeWallets := &fakeWalletRepository{
		getByUserAndTypeResult: entities.Wallet{ID: 3, UserID: 7, TokenType: valueobjects.TokenTypeUSDC},
		creditResult:           entities.Wallet{ID: 3, UserID: 7, TokenType: valueobjects.TokenTypeUSDC, BalanceMinor: 103000000},
	}
	fakeTransactions := &fakeTransactionRepository{
		insertErr: apperrors.NewInternal("DB_QUERY_FAILED", "insert failed", nil),
	}
	useCase := NewCompleteTicketUseCase(fakeTickets, fakeWallets, fakeTransactions, nil, fixedClock{now: now}, nil)

	output, appErr := useCase.Execute(context.Background(), dto.CompleteTicketCommand{
		TicketID:    5,
		FulfillerID: 7,
		ImageURLs:   []string{"https://cdn.example.com/proof.png"},
	})
	if appErr != nil {
		t.Fatalf("expected ledger failure to be tolerated, got %v", appErr)
	}
	if output.WalletBalance != "103" {
		t.Fatalf("expected balance 103, got %s", output.WalletBalance)
	}
}
