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

func validatedTicket(id int64) entities.Ticket {
	return entities.Ticket{
		ID:           id,
		TicketID:     "TCK-1001",
		Status:       valueobjects.TicketStatusValidated,
		AmountMinor:  100000000,
		TokenType:    valueobjects.TokenTypeUSDC,
		FacebookName: "John Smith",
		Game:         "slots",
		DomainID:     1,
		CreatedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestClaimTicketUseCaseRejectsNonValidatedStatus(t *testing.T) {
	fulfillerID := int64(7)
	ticket := validatedTicket(5)
	ticket.Status = valueobjects.TicketStatusProcessing
	ticket.FulfillerID = &fulfillerID

	fakeTickets := &fakeTicketRepository{getByIDResult: ticket}
	useCase := NewClaimTicketUseCase(fakeTickets)

	_, appErr := useCase.Execute(context.Background(), dto.ClaimTicketCommand{TicketID: 5, FulfillerID: 9})
	if appErr == nil {
		t.Fatal("expected conflict error")
	}
	if appErr.Code != "ticket_already_assigned" {
		t.Fatalf("expected ticket_already_assigned, got %s", appErr.Code)
	}
	if appErr.Message != "This ticket is already assigned" {
		t.Fatalf("unexpected message %q", appErr.Message)
	}
	if fakeTickets.claims != 0 {
		t.Fatalf("expected no claim attempt, got %d", fakeTickets.claims)
	}
}

func TestClaimTicketUseCaseRemapsRepositoryConflict(t *testing.T) {
	fakeTickets := &fakeTicketRepository{
		getByIDResult: validatedTicket(5),
		claimErr:      apperrors.NewConflict("ticket_claim_race", "row version changed", nil),
	}
	useCase := NewClaimTicketUseCase(fakeTickets)

	_, appErr := useCase.Execute(context.Background(), dto.ClaimTicketCommand{TicketID: 5, FulfillerID: 7})
	if appErr == nil {
		t.Fatal("expected conflict error")
	}
	if appErr.Code != "ticket_already_assigned" {
		t.Fatalf("expected ticket_already_assigned, got %s", appErr.Code)
	}
	if appErr.Type != apperrors.TypeConflict {
		t.Fatalf("expected conflict type, got %s", appErr.Type)
	}
}

func TestClaimTicketUseCaseRequiresFulfillerID(t *testing.T) {
	useCase := NewClaimTicketUseCase(&fakeTicketRepository{})

	_, appErr := useCase.Execute(context.Background(), dto.ClaimTicketCommand{TicketID: 5})
	if appErr == nil || appErr.Type != apperrors.TypeValidation {
		t.Fatalf("expected validation error, got %v", appErr)
	}
}

func TestClaimTicketUseCaseSuccess(t *testing.T) {
	fulfillerID := int64(7)
	claimed := validatedTicket(5)
	claimed.Status = valueobjects.TicketStatusProcessing
	claimed.FulfillerID = &fulfillerID

	fakeTickets := &fakeTicketRepository{
		getByIDResult: validatedTicket(5),
		claimResult:   claimed,
	}
	useCase := NewClaimTicketUseCase(fakeTickets)

	resource, appErr := useCase.Execute(context.Background(), dto.ClaimTicketCommand{TicketID: 5, FulfillerID: 7})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	if fakeTickets.lastFulfillerID != 7 {
		t.Fatalf("expected claim for fulfiller 7, got %d", fakeTickets.lastFulfillerID)
	}
	if resource.Status != "processing" {
		t.Fatalf("expected processing status, got %s", resource.Status)
	}
	if resource.FulfillerID == nil || *resource.FulfillerID != 7 {
		t.Fatalf("expected fulfiller 7 on resource, got %v", resource.FulfillerID)
	}
	if resource.Amount != "100" {
		t.Fatalf("expected amount 100, got %s", resource.Amount)
	}
}
