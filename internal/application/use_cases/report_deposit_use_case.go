package use_cases

import (
	"context"
	"regexp"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	"ticketpay/internal/domain/entities"
	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

const depositDeferredMessage = "Your deposit will be processed within 5 minutes."

var transactionHashPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

type reportDepositUseCase struct {
	intents      portsout.DepositIntentRepository
	wallets      portsout.WalletRepository
	transactions portsout.CryptoTransactionRepository
	chain        portsout.TokenTransferReader
	clock        Clock
}

func NewReportDepositUseCase(
	intents portsout.DepositIntentRepository,
	wallets portsout.WalletRepository,
	transactions portsout.CryptoTransactionRepository,
	chain portsout.TokenTransferReader,
	clock Clock,
) portsin.ReportDepositUseCase {
	if clock == nil {
		clock = NewSystemClock()
	}

	return &reportDepositUseCase{
		intents:      intents,
		wallets:      wallets,
		transactions: transactions,
		chain:        chain,
		clock:        clock,
	}
}

// A reported hash settles immediately when the node already confirms
// it; otherwise the intent is marked reported and the reconcile sweep
// picks it up later.
func (u *reportDepositUseCase) Execute(ctx context.Context, command dto.ReportDepositCommand) (dto.ReportDepositOutput, *apperrors.AppError) {
	if u.intents == nil || u.wallets == nil || u.chain == nil {
		return dto.ReportDepositOutput{}, apperrors.NewInternal(
			"report_deposit_dependencies_missing",
			"deposit intent repository, wallet repository and chain reader are required",
			nil,
		)
	}

	if !transactionHashPattern.MatchString(command.TransactionHash) {
		return dto.ReportDepositOutput{}, apperrors.NewValidation(
			"invalid_request",
			"transaction hash is invalid",
			map[string]any{"field": "txhash"},
		)
	}

	transfer, found, appErr := u.chain.GetTokenTransfer(ctx, command.TransactionHash)
	if appErr != nil {
		return dto.ReportDepositOutput{}, appErr
	}

	if found && transfer.Confirmed {
		return u.settle(ctx, command, transfer)
	}

	return u.deferSettlement(ctx, command)
}

func (u *reportDepositUseCase) settle(
	ctx context.Context,
	command dto.ReportDepositCommand,
	transfer portsout.TokenTransfer,
) (dto.ReportDepositOutput, *apperrors.AppError) {
	intent, ok, appErr := u.intents.FindOpenByAddress(ctx, transfer.AddressTo)
	if appErr != nil {
		return dto.ReportDepositOutput{}, appErr
	}
	if !ok {
		return dto.ReportDepositOutput{}, apperrors.NewNotFound(
			"deposit_intent_not_found",
			"no pending deposit expects this transfer",
			map[string]any{"txhash": command.TransactionHash},
		)
	}

	now := u.clock.NowUTC()
	if appErr := u.intents.Confirm(ctx, intent.ID, command.TransactionHash, now); appErr != nil {
		return dto.ReportDepositOutput{}, appErr
	}

	wallet, appErr := u.wallets.GetByUserAndType(ctx, command.UserID, valueobjects.WalletTypeCustomer)
	if appErr != nil {
		return dto.ReportDepositOutput{}, appErr
	}
	if _, appErr := u.wallets.Credit(ctx, wallet.ID, transfer.AmountMinor, now); appErr != nil {
		return dto.ReportDepositOutput{}, appErr
	}

	if u.transactions != nil {
		hash := command.TransactionHash
		from := transfer.AddressFrom
		to := transfer.AddressTo
		_, _ = u.transactions.Insert(ctx, entities.CryptoTransaction{
			TransactionType: entities.TransactionTypeDeposit,
			Status:          entities.TransactionStatusCompleted,
			AmountMinor:     transfer.AmountMinor,
			TokenType:       valueobjects.TokenTypeUSDC,
			TransactionHash: &hash,
			AddressFrom:     &from,
			AddressTo:       &to,
			UserIDTo:        &command.UserID,
			Description:     "On-chain deposit",
			CreatedAt:       now,
		})
	}

	return dto.ReportDepositOutput{
		Status:  "completed",
		Message: "Deposit confirmed.",
	}, nil
}

func (u *reportDepositUseCase) deferSettlement(ctx context.Context, command dto.ReportDepositCommand) (dto.ReportDepositOutput, *apperrors.AppError) {
	wallet, appErr := u.wallets.GetByUserAndType(ctx, command.UserID, valueobjects.WalletTypeCustomer)
	if appErr != nil {
		return dto.ReportDepositOutput{}, appErr
	}

	if wallet.Address != "" {
		intent, ok, findErr := u.intents.FindOpenBySender(ctx, wallet.Address)
		if findErr != nil {
			return dto.ReportDepositOutput{}, findErr
		}
		if ok {
			if appErr := u.intents.MarkReported(ctx, intent.ID, command.TransactionHash); appErr != nil {
				return dto.ReportDepositOutput{}, appErr
			}
		}
	}

	return dto.ReportDepositOutput{
		Status:  "pending",
		Message: depositDeferredMessage,
	}, nil
}
