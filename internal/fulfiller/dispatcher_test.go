package fulfiller

import (
	"context"
	"testing"
	"time"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

func newTestDispatcher(backend *fakeBackend, alerts *recordingAlerts) (*Dispatcher, *Board, *Balance) {
	board := NewBoard()
	balance := NewBalance()
	aging := NewAgingMonitor(board, alerts, time.Second, nil)
	dispatcher := NewDispatcher(backend, board, aging, balance, alerts, nil, nil)
	return dispatcher, board, balance
}

func TestDispatcherClaimEnforcesCap(t *testing.T) {
	alerts := &recordingAlerts{}
	dispatcher, board, _ := newTestDispatcher(&fakeBackend{}, alerts)

	held := make([]dto.TicketResource, 0, 10)
	for i := int64(1); i <= 10; i++ {
		held = append(held, ticketFixture(i, "processing", "10.00"))
	}
	board.SetAccepted(held)

	appErr := dispatcher.Claim(context.Background(), 11)
	if appErr == nil {
		t.Fatal("expected claim over the cap to fail")
	}
	if appErr.Code != "claim_limit_reached" {
		t.Fatalf("expected claim_limit_reached, got %s", appErr.Code)
	}

	messages := alerts.Messages()
	if len(messages) != 1 || messages[0] != "You can add up to 10." {
		t.Fatalf("expected cap alert, got %v", messages)
	}
	if board.AcceptedCount() != 10 {
		t.Fatalf("expected accepted list unchanged, got %d", board.AcceptedCount())
	}
}

func TestDispatcherClaimSurfacesConflictMessage(t *testing.T) {
	alerts := &recordingAlerts{}
	backend := &fakeBackend{
		claim: func(int64) (dto.TicketResource, *apperrors.AppError) {
			return dto.TicketResource{}, apperrors.NewConflict("ticket_already_assigned", "This ticket is already assigned", nil)
		},
	}
	dispatcher, board, balance := newTestDispatcher(backend, alerts)
	board.ApplySnapshot(1, []dto.TicketResource{ticketFixture(5, "validated", "10.00")}, nil)

	appErr := dispatcher.Claim(context.Background(), 5)
	if appErr == nil {
		t.Fatal("expected conflict to propagate")
	}

	messages := alerts.Messages()
	if len(messages) != 1 || messages[0] != "This ticket is already assigned" {
		t.Fatalf("expected conflict message verbatim, got %v", messages)
	}
	if board.IncomingCount() != 1 || board.AcceptedCount() != 0 {
		t.Fatal("expected board unchanged after conflict")
	}
	if balance.Minor() != 0 {
		t.Fatalf("expected no optimistic credit, got %d", balance.Minor())
	}
}

func TestDispatcherClaimCreditsMargin(t *testing.T) {
	alerts := &recordingAlerts{}
	backend := &fakeBackend{
		claim: func(ticketID int64) (dto.TicketResource, *apperrors.AppError) {
			return ticketFixture(ticketID, "processing", "100.00"), nil
		},
	}
	dispatcher, board, balance := newTestDispatcher(backend, alerts)
	board.ApplySnapshot(1, []dto.TicketResource{ticketFixture(5, "validated", "100.00")}, nil)

	if appErr := dispatcher.Claim(context.Background(), 5); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	if board.AcceptedCount() != 1 || board.IncomingCount() != 0 {
		t.Fatal("expected ticket moved to accepted")
	}
	// 100.00 USDC with the 3% fulfiller margin.
	if balance.Minor() != 103000000 {
		t.Fatalf("expected 103000000 minor units, got %d", balance.Minor())
	}
}

func TestDispatcherCompleteRequiresImages(t *testing.T) {
	alerts := &recordingAlerts{}
	uploadCalled := false
	backend := &fakeBackend{
		uploadFiles: func(paths []string) ([]string, *apperrors.AppError) {
			uploadCalled = true
			return paths, nil
		},
	}
	dispatcher, _, _ := newTestDispatcher(backend, alerts)

	appErr := dispatcher.Complete(context.Background(), 5, nil)
	if appErr == nil || appErr.Code != "completion_images_required" {
		t.Fatalf("expected completion_images_required, got %v", appErr)
	}
	if uploadCalled {
		t.Fatal("expected no upload without images")
	}

	messages := alerts.Messages()
	if len(messages) != 1 || messages[0] != "Please upload completion images" {
		t.Fatalf("expected upload prompt, got %v", messages)
	}
}

func TestDispatcherCompleteUploadsThenSettles(t *testing.T) {
	alerts := &recordingAlerts{}
	var completedWith []string
	backend := &fakeBackend{
		uploadFiles: func(paths []string) ([]string, *apperrors.AppError) {
			return []string{"/files/a.png", "/files/b.png"}, nil
		},
		complete: func(ticketID int64, imageURLs []string) (dto.CompleteTicketOutput, *apperrors.AppError) {
			completedWith = imageURLs
			return dto.CompleteTicketOutput{
				Ticket:        ticketFixture(ticketID, "completed", "50.00"),
				WalletBalance: "151.5",
			}, nil
		},
	}
	dispatcher, board, balance := newTestDispatcher(backend, alerts)
	board.SetAccepted([]dto.TicketResource{ticketFixture(5, "processing", "50.00")})

	if appErr := dispatcher.Complete(context.Background(), 5, []string{"a.png", "b.png"}); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	if len(completedWith) != 2 || completedWith[0] != "/files/a.png" {
		t.Fatalf("expected uploaded urls passed through, got %v", completedWith)
	}
	if board.AcceptedCount() != 0 {
		t.Fatal("expected ticket removed from accepted")
	}
	if balance.Amount() != "151.5" {
		t.Fatalf("expected settled balance 151.5, got %s", balance.Amount())
	}
}

func TestDispatcherReportAppliesReturnedBalance(t *testing.T) {
	alerts := &recordingAlerts{}
	backend := &fakeBackend{
		report: func(ticketID int64, reason, screenshotURL string) (dto.ReportTicketOutput, *apperrors.AppError) {
			return dto.ReportTicketOutput{
				Ticket:        ticketFixture(ticketID, "reported", "50.00"),
				WalletBalance: "98.5",
			}, nil
		},
	}
	dispatcher, board, balance := newTestDispatcher(backend, alerts)
	board.SetAccepted([]dto.TicketResource{ticketFixture(5, "processing", "50.00")})
	balance.SetMinor(150000000)

	if appErr := dispatcher.Report(context.Background(), 5, "no_player_found", "/files/proof.png"); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	if balance.Amount() != "98.5" {
		t.Fatalf("expected balance 98.5 verbatim, got %s", balance.Amount())
	}
	if board.AcceptedCount() != 0 || len(board.Reported()) != 1 {
		t.Fatal("expected ticket moved to reported")
	}
}

func TestDispatcherFailureLeavesStateAndAlerts(t *testing.T) {
	alerts := &recordingAlerts{}
	backend := &fakeBackend{
		complete: func(int64, []string) (dto.CompleteTicketOutput, *apperrors.AppError) {
			return dto.CompleteTicketOutput{}, apperrors.NewInternal("ticket_update_failed", "update failed", nil)
		},
	}
	dispatcher, board, balance := newTestDispatcher(backend, alerts)
	board.SetAccepted([]dto.TicketResource{ticketFixture(5, "processing", "50.00")})
	balance.SetMinor(1000000)

	appErr := dispatcher.Complete(context.Background(), 5, []string{"a.png"})
	if appErr == nil {
		t.Fatal("expected failure to propagate")
	}

	if board.AcceptedCount() != 1 {
		t.Fatal("expected accepted list unchanged after failure")
	}
	if balance.Minor() != 1000000 {
		t.Fatalf("expected balance unchanged, got %d", balance.Minor())
	}
	messages := alerts.Messages()
	if len(messages) != 1 || messages[0] != "Failed to complete ticket #5" {
		t.Fatalf("expected failure alert, got %v", messages)
	}
}

func TestDispatcherValidateTriggersRefresh(t *testing.T) {
	refreshed := 0
	board := NewBoard()
	balance := NewBalance()
	aging := NewAgingMonitor(board, nil, time.Second, nil)
	dispatcher := NewDispatcher(&fakeBackend{}, board, aging, balance, nil, func(context.Context) {
		refreshed++
	}, nil)

	if appErr := dispatcher.Validate(context.Background(), 5); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if appErr := dispatcher.Decline(context.Background(), 6); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	if refreshed != 2 {
		t.Fatalf("expected 2 refreshes, got %d", refreshed)
	}
}
