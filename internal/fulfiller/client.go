package fulfiller

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

// BackendClient is the slice of the ticket API the session drives. The
// server resolves the acting user from the bearer token, so user ids
// never appear in these calls.
type BackendClient interface {
	ListTicketsWithoutLimit(ctx context.Context, statuses []string) ([]dto.TicketResource, *apperrors.AppError)
	ClaimTicket(ctx context.Context, ticketID int64) (dto.TicketResource, *apperrors.AppError)
	CompleteTicket(ctx context.Context, ticketID int64, imageURLs []string) (dto.CompleteTicketOutput, *apperrors.AppError)
	ReportTicket(ctx context.Context, ticketID int64, reason, screenshotURL string) (dto.ReportTicketOutput, *apperrors.AppError)
	ValidateTicket(ctx context.Context, ticketID int64) (dto.TicketResource, *apperrors.AppError)
	DeclineTicket(ctx context.Context, ticketID int64) (dto.TicketResource, *apperrors.AppError)

	GetWallet(ctx context.Context, walletType string) (dto.WalletResource, *apperrors.AppError)
	Withdraw(ctx context.Context, amount, tokenType, addressTo string) (dto.WalletResource, *apperrors.AppError)

	UploadFiles(ctx context.Context, paths []string) ([]string, *apperrors.AppError)

	ResolveDepositAddress(ctx context.Context, amount, addressFrom string) (dto.DepositAddressResource, *apperrors.AppError)
	ReportDeposit(ctx context.Context, transactionHash string) (dto.ReportDepositOutput, *apperrors.AppError)
	CreateWithdrawRequest(ctx context.Context, amount, to string) (dto.WithdrawRequestResource, *apperrors.AppError)
}

// AlertSink receives user-facing alerts. Poll failures are never
// alerted, only logged; action failures always are.
type AlertSink interface {
	Notify(message string)
	PlaySound()
}

// NopAlertSink discards everything, used when no sink is configured.
type NopAlertSink struct{}

func (NopAlertSink) Notify(string) {}

func (NopAlertSink) PlaySound() {}
