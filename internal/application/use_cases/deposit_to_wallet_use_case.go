package use_cases

import (
	"context"
	"time"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	"ticketpay/internal/domain/entities"
	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type depositToWalletUseCase struct {
	wallets      portsout.WalletRepository
	transactions portsout.CryptoTransactionRepository
	clock        Clock
}

func NewDepositToWalletUseCase(
	wallets portsout.WalletRepository,
	transactions portsout.CryptoTransactionRepository,
	clock Clock,
) portsin.DepositToWalletUseCase {
	if clock == nil {
		clock = NewSystemClock()
	}

	return &depositToWalletUseCase{
		wallets:      wallets,
		transactions: transactions,
		clock:        clock,
	}
}

func (u *depositToWalletUseCase) Execute(ctx context.Context, command dto.WalletTransferCommand) (dto.WalletResource, *apperrors.AppError) {
	if u.wallets == nil || u.transactions == nil {
		return dto.WalletResource{}, apperrors.NewInternal(
			"wallet_transfer_dependencies_missing",
			"wallet and transaction repositories are required",
			nil,
		)
	}

	amountMinor, tokenType, appErr := parseTransferAmount(command)
	if appErr != nil {
		return dto.WalletResource{}, appErr
	}

	wallet, appErr := u.wallets.GetByUserAndType(ctx, command.UserID, valueobjects.WalletTypeCustomer)
	if appErr != nil {
		return dto.WalletResource{}, appErr
	}

	now := u.clock.NowUTC()
	wallet, appErr = u.wallets.Credit(ctx, wallet.ID, amountMinor, now)
	if appErr != nil {
		return dto.WalletResource{}, appErr
	}

	transaction := buildTransferRow(command, entities.TransactionTypeDeposit, amountMinor, tokenType, now)
	transaction.UserIDTo = &command.UserID
	if _, appErr := u.transactions.Insert(ctx, transaction); appErr != nil {
		return dto.WalletResource{}, appErr
	}

	return mapWalletResource(wallet), nil
}

func parseTransferAmount(command dto.WalletTransferCommand) (int64, valueobjects.TokenType, *apperrors.AppError) {
	amountMinor, appErr := valueobjects.ParseAmountMinor(command.Amount)
	if appErr != nil {
		return 0, "", appErr
	}
	if amountMinor <= 0 {
		return 0, "", apperrors.NewValidation(
			"invalid_request",
			"amount must be greater than 0",
			map[string]any{"field": "amount"},
		)
	}

	tokenType := valueobjects.TokenTypeUSDC
	if command.TokenType != "" {
		parsed, appErr := valueobjects.ParseTokenType(command.TokenType)
		if appErr != nil {
			return 0, "", appErr
		}
		tokenType = parsed
	}

	return amountMinor, tokenType, nil
}

func buildTransferRow(
	command dto.WalletTransferCommand,
	transactionType entities.TransactionType,
	amountMinor int64,
	tokenType valueobjects.TokenType,
	now time.Time,
) entities.CryptoTransaction {
	transaction := entities.CryptoTransaction{
		TransactionType: transactionType,
		Status:          entities.TransactionStatusCompleted,
		AmountMinor:     amountMinor,
		TokenType:       tokenType,
		Description:     command.Description,
		CreatedAt:       now,
	}
	if command.TransactionHash != "" {
		hash := command.TransactionHash
		transaction.TransactionHash = &hash
	}
	if command.AddressFrom != "" {
		from := command.AddressFrom
		transaction.AddressFrom = &from
	}
	if command.AddressTo != "" {
		to := command.AddressTo
		transaction.AddressTo = &to
	}

	return transaction
}
