package fulfiller

import (
	"context"
	"fmt"
	"log"
	"time"

	"ticketpay/internal/domain/policies"
	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

const claimLimitMessage = "You can add up to 10."

// Dispatcher executes ticket actions against the backend and keeps the
// board, the aging monitor and the pending balance in step with the
// outcomes. Local state only changes after the server confirms; every
// failed action is surfaced through the alert sink.
type Dispatcher struct {
	client  BackendClient
	board   *Board
	aging   *AgingMonitor
	balance *Balance
	alerts  AlertSink
	refresh func(ctx context.Context)
	logger  *log.Logger
	now     func() time.Time
}

func NewDispatcher(
	client BackendClient,
	board *Board,
	aging *AgingMonitor,
	balance *Balance,
	alerts AlertSink,
	refresh func(ctx context.Context),
	logger *log.Logger,
) *Dispatcher {
	if alerts == nil {
		alerts = NopAlertSink{}
	}
	if refresh == nil {
		refresh = func(context.Context) {}
	}

	return &Dispatcher{
		client:  client,
		board:   board,
		aging:   aging,
		balance: balance,
		alerts:  alerts,
		refresh: refresh,
		logger:  logger,
		now:     time.Now,
	}
}

// Claim accepts an incoming ticket. The accepted-count cap is enforced
// locally before the request; a server-side conflict means someone else
// got there first and its message is surfaced as-is. On success the
// pending balance is credited optimistically with the fulfiller margin.
func (d *Dispatcher) Claim(ctx context.Context, ticketID int64) *apperrors.AppError {
	if d.board.AcceptedCount() >= policies.MaxAcceptedTickets {
		d.alerts.Notify(claimLimitMessage)
		return apperrors.NewValidation("claim_limit_reached", claimLimitMessage, map[string]any{
			"limit": policies.MaxAcceptedTickets,
		})
	}

	updated, appErr := d.client.ClaimTicket(ctx, ticketID)
	if appErr != nil {
		d.alertActionFailure("accept", ticketID, appErr)
		return appErr
	}

	d.board.Claim(updated)
	d.aging.Track(updated.ID, d.now())

	if creditMinor, parseErr := valueobjects.ParseAmountMinor(updated.Amount); parseErr == nil {
		d.balance.Add(policies.FulfillerCreditMinor(creditMinor))
	} else {
		d.logf("claim credit skipped ticket_id=%d code=%s", ticketID, parseErr.Code)
	}

	d.logf("ticket accepted ticket_id=%d accepted=%d", ticketID, d.board.AcceptedCount())
	return nil
}

// Complete uploads the proof images, then marks the ticket done. The
// server's response carries the settled wallet balance, which replaces
// the optimistic figure.
func (d *Dispatcher) Complete(ctx context.Context, ticketID int64, imagePaths []string) *apperrors.AppError {
	if len(imagePaths) == 0 {
		message := "Please upload completion images"
		d.alerts.Notify(message)
		return apperrors.NewValidation("completion_images_required", message, nil)
	}

	imageURLs, appErr := d.client.UploadFiles(ctx, imagePaths)
	if appErr != nil {
		d.alertActionFailure("complete", ticketID, appErr)
		return appErr
	}

	output, appErr := d.client.CompleteTicket(ctx, ticketID, imageURLs)
	if appErr != nil {
		d.alertActionFailure("complete", ticketID, appErr)
		return appErr
	}

	d.board.Complete(ticketID)
	d.aging.Forget(ticketID)
	if balanceErr := d.balance.SetAmount(output.WalletBalance); balanceErr != nil {
		d.logf("balance refresh skipped ticket_id=%d code=%s", ticketID, balanceErr.Code)
	}

	d.logf("ticket completed ticket_id=%d balance=%s", ticketID, output.WalletBalance)
	return nil
}

// Report flags an accepted ticket. The balance the server returns
// already has the optimistic credit reversed and is applied verbatim.
func (d *Dispatcher) Report(ctx context.Context, ticketID int64, reason, screenshotURL string) *apperrors.AppError {
	output, appErr := d.client.ReportTicket(ctx, ticketID, reason, screenshotURL)
	if appErr != nil {
		d.alertActionFailure("report", ticketID, appErr)
		return appErr
	}

	d.board.Report(output.Ticket)
	d.aging.Forget(ticketID)
	if balanceErr := d.balance.SetAmount(output.WalletBalance); balanceErr != nil {
		d.logf("balance refresh skipped ticket_id=%d code=%s", ticketID, balanceErr.Code)
	}

	d.logf("ticket reported ticket_id=%d reason=%s", ticketID, reason)
	return nil
}

// Validate approves a new ticket and refreshes the incoming list so it
// shows up under the active sort.
func (d *Dispatcher) Validate(ctx context.Context, ticketID int64) *apperrors.AppError {
	if _, appErr := d.client.ValidateTicket(ctx, ticketID); appErr != nil {
		d.alertActionFailure("validate", ticketID, appErr)
		return appErr
	}

	d.refresh(ctx)
	d.logf("ticket validated ticket_id=%d", ticketID)
	return nil
}

// Decline rejects a new ticket and refreshes the incoming list.
func (d *Dispatcher) Decline(ctx context.Context, ticketID int64) *apperrors.AppError {
	if _, appErr := d.client.DeclineTicket(ctx, ticketID); appErr != nil {
		d.alertActionFailure("decline", ticketID, appErr)
		return appErr
	}

	d.board.Drop(ticketID)
	d.refresh(ctx)
	d.logf("ticket declined ticket_id=%d", ticketID)
	return nil
}

func (d *Dispatcher) alertActionFailure(action string, ticketID int64, appErr *apperrors.AppError) {
	if appErr.Type == apperrors.TypeConflict {
		d.alerts.Notify(appErr.Message)
	} else {
		d.alerts.Notify(fmt.Sprintf("Failed to %s ticket #%d", action, ticketID))
	}
	d.logf("ticket action failed action=%s ticket_id=%d code=%s message=%s", action, ticketID, appErr.Code, appErr.Message)
}

func (d *Dispatcher) logf(format string, args ...any) {
	if d.logger == nil {
		return
	}
	d.logger.Printf(format, args...)
}
