package fulfiller

import (
	"context"
	"fmt"
	"log"

	"ticketpay/internal/domain/entities"
	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

const (
	withdrawMinMessage = "Minium withdrawable amount should be greater than 0 USDC"
	withdrawMaxFormat  = "Maximum withdrawable amount is %s USDC"
)

// PaymentFlow drives deposits and withdrawals for the session. Deposits
// go through the connected wallet and are reported back so the ledger
// can confirm them on chain; withdrawals settle directly for clients
// and become review requests for fulfillers.
type PaymentFlow struct {
	client    BackendClient
	connector *Connector
	balance   *Balance
	alerts    AlertSink
	role      entities.UserRole
	logger    *log.Logger
}

func NewPaymentFlow(
	client BackendClient,
	connector *Connector,
	balance *Balance,
	alerts AlertSink,
	role entities.UserRole,
	logger *log.Logger,
) *PaymentFlow {
	if alerts == nil {
		alerts = NopAlertSink{}
	}

	return &PaymentFlow{
		client:    client,
		connector: connector,
		balance:   balance,
		alerts:    alerts,
		role:      role,
		logger:    logger,
	}
}

// Deposit resolves a deposit address, sends the token transfer from the
// connected wallet and reports the hash. A user rejection aborts with no
// alert; the pending balance is credited optimistically once the hash
// is reported.
func (f *PaymentFlow) Deposit(ctx context.Context, amount string) *apperrors.AppError {
	amountMinor, appErr := valueobjects.ParseAmountMinor(amount)
	if appErr != nil {
		f.alerts.Notify(appErr.Message)
		return appErr
	}

	if f.connector.State() != StateConnected {
		message := "Connect a wallet before depositing"
		f.alerts.Notify(message)
		return apperrors.NewValidation("wallet_not_connected", message, nil)
	}

	address, appErr := f.client.ResolveDepositAddress(ctx, amount, f.connector.Account())
	if appErr != nil {
		f.alerts.Notify("Failed to start the deposit")
		f.logf("deposit address resolution failed code=%s message=%s", appErr.Code, appErr.Message)
		return appErr
	}

	transactionHash, appErr := f.connector.SendToken(ctx, address.Address, amountMinor)
	if appErr != nil {
		switch TransferErrorKind(appErr) {
		case ProviderErrorUserRejected:
			f.logf("deposit cancelled by user amount=%s", amount)
		case ProviderErrorInsufficientBalance:
			f.alerts.Notify(appErr.Message)
		default:
			f.alerts.Notify("Failed to send the deposit")
		}
		return appErr
	}

	if _, appErr := f.client.ReportDeposit(ctx, transactionHash); appErr != nil {
		f.alerts.Notify("Failed to register the deposit")
		f.logf("deposit report failed tx_hash=%s code=%s message=%s", transactionHash, appErr.Code, appErr.Message)
		return appErr
	}

	f.balance.Add(amountMinor)
	f.logf("deposit reported amount=%s tx_hash=%s", amount, transactionHash)
	return nil
}

// Withdraw validates the amount against the pending balance, then
// settles directly for clients or files a withdrawal request for
// fulfillers.
func (f *PaymentFlow) Withdraw(ctx context.Context, amount, to string) *apperrors.AppError {
	amountMinor, appErr := valueobjects.ParseAmountMinor(amount)
	if appErr != nil {
		f.alerts.Notify(withdrawMinMessage)
		return appErr
	}

	if amountMinor <= 0 {
		f.alerts.Notify(withdrawMinMessage)
		return apperrors.NewValidation("withdraw_amount_too_small", withdrawMinMessage, nil)
	}

	availableMinor := f.balance.Minor()
	if amountMinor > availableMinor {
		message := fmt.Sprintf(withdrawMaxFormat, valueobjects.FormatAmountMinor(availableMinor))
		f.alerts.Notify(message)
		return apperrors.NewValidation("withdraw_amount_too_large", message, map[string]any{
			"available": valueobjects.FormatAmountMinor(availableMinor),
		})
	}

	if f.role == entities.UserRoleClient {
		wallet, appErr := f.client.Withdraw(ctx, amount, valueobjects.TokenTypeUSDC.String(), to)
		if appErr != nil {
			f.alerts.Notify(fmt.Sprintf("Failed to withdraw %s USDC", amount))
			return appErr
		}

		if balanceErr := f.balance.SetAmount(wallet.Balance); balanceErr != nil {
			f.logf("balance refresh skipped code=%s", balanceErr.Code)
		}
		f.logf("withdrawal settled amount=%s balance=%s", amount, wallet.Balance)
		return nil
	}

	request, appErr := f.client.CreateWithdrawRequest(ctx, amount, to)
	if appErr != nil {
		f.alerts.Notify(fmt.Sprintf("Failed to withdraw %s USDC", amount))
		return appErr
	}

	f.logf("withdrawal requested amount=%s request_id=%d", amount, request.ID)
	return nil
}

func (f *PaymentFlow) logf(format string, args ...any) {
	if f.logger == nil {
		return
	}
	f.logger.Printf(format, args...)
}
