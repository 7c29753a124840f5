package use_cases

import (
	"context"
	"fmt"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	"ticketpay/internal/domain/entities"
	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type withdrawFromWalletUseCase struct {
	wallets      portsout.WalletRepository
	transactions portsout.CryptoTransactionRepository
	clock        Clock
}

func NewWithdrawFromWalletUseCase(
	wallets portsout.WalletRepository,
	transactions portsout.CryptoTransactionRepository,
	clock Clock,
) portsin.WithdrawFromWalletUseCase {
	if clock == nil {
		clock = NewSystemClock()
	}

	return &withdrawFromWalletUseCase{
		wallets:      wallets,
		transactions: transactions,
		clock:        clock,
	}
}

func (u *withdrawFromWalletUseCase) Execute(ctx context.Context, command dto.WalletTransferCommand) (dto.WalletResource, *apperrors.AppError) {
	if u.wallets == nil || u.transactions == nil {
		return dto.WalletResource{}, apperrors.NewInternal(
			"wallet_transfer_dependencies_missing",
			"wallet and transaction repositories are required",
			nil,
		)
	}

	amountMinor, tokenType, appErr := parseTransferAmount(command)
	if appErr != nil {
		return dto.WalletResource{}, apperrors.NewValidation(
			"invalid_request",
			"Minium withdrawable amount should be greater than 0 USDC",
			map[string]any{"field": "amount"},
		)
	}

	wallet, appErr := u.wallets.GetByUserAndType(ctx, command.UserID, valueobjects.WalletTypeCustomer)
	if appErr != nil {
		return dto.WalletResource{}, appErr
	}

	if !wallet.CanDebit(amountMinor) {
		return dto.WalletResource{}, apperrors.NewValidation(
			"insufficient_balance",
			fmt.Sprintf("Maximum withdrawable amount is %s USDC", valueobjects.FormatAmountMinor(wallet.BalanceMinor)),
			map[string]any{"balance": valueobjects.FormatAmountMinor(wallet.BalanceMinor)},
		)
	}

	now := u.clock.NowUTC()
	wallet, appErr = u.wallets.Debit(ctx, wallet.ID, amountMinor, now)
	if appErr != nil {
		return dto.WalletResource{}, appErr
	}

	transaction := buildTransferRow(command, entities.TransactionTypeWithdraw, amountMinor, tokenType, now)
	transaction.UserIDFrom = &command.UserID
	if _, appErr := u.transactions.Insert(ctx, transaction); appErr != nil {
		return dto.WalletResource{}, appErr
	}

	return mapWalletResource(wallet), nil
}
