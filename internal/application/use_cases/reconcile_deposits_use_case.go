package use_cases

import (
	"context"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	"ticketpay/internal/domain/entities"
	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type reconcileDepositsUseCase struct {
	intents      portsout.DepositIntentRepository
	wallets      portsout.WalletRepository
	transactions portsout.CryptoTransactionRepository
	chain        portsout.TokenTransferReader
	clock        Clock
}

func NewReconcileDepositsUseCase(
	intents portsout.DepositIntentRepository,
	wallets portsout.WalletRepository,
	transactions portsout.CryptoTransactionRepository,
	chain portsout.TokenTransferReader,
	clock Clock,
) portsin.ReconcileDepositsUseCase {
	if clock == nil {
		clock = NewSystemClock()
	}

	return &reconcileDepositsUseCase{
		intents:      intents,
		wallets:      wallets,
		transactions: transactions,
		chain:        chain,
		clock:        clock,
	}
}

// One sweep over intents whose hash was reported but not yet confirmed.
// A transfer that confirmed since the report settles the intent and
// credits the sender's wallet; the rest stay for the next sweep.
func (u *reconcileDepositsUseCase) Execute(ctx context.Context, command dto.ReconcileDepositsCommand) (dto.ReconcileDepositsOutput, *apperrors.AppError) {
	if u.intents == nil || u.wallets == nil || u.chain == nil {
		return dto.ReconcileDepositsOutput{}, apperrors.NewInternal(
			"reconcile_deposits_dependencies_missing",
			"deposit intent repository, wallet repository and chain reader are required",
			nil,
		)
	}
	if command.BatchSize <= 0 {
		return dto.ReconcileDepositsOutput{}, apperrors.NewValidation(
			"reconcile_deposits_batch_size_invalid",
			"reconcile batch size must be greater than zero",
			map[string]any{"batch_size": command.BatchSize},
		)
	}

	intents, appErr := u.intents.ListUnconfirmedReported(ctx, command.BatchSize)
	if appErr != nil {
		return dto.ReconcileDepositsOutput{}, appErr
	}

	output := dto.ReconcileDepositsOutput{Scanned: len(intents)}
	for _, intent := range intents {
		if intent.TransactionHash == nil {
			output.Pending++
			continue
		}

		transfer, found, appErr := u.chain.GetTokenTransfer(ctx, *intent.TransactionHash)
		if appErr != nil {
			return output, appErr
		}
		if !found || !transfer.Confirmed {
			output.Pending++
			continue
		}

		now := u.clock.NowUTC()
		if appErr := u.intents.Confirm(ctx, intent.ID, *intent.TransactionHash, now); appErr != nil {
			return output, appErr
		}

		wallet, appErr := u.wallets.GetByAddress(ctx, intent.AddressFrom)
		if appErr != nil {
			if appErr.Type == apperrors.TypeNotFound {
				output.Confirmed++
				continue
			}
			return output, appErr
		}
		if _, appErr := u.wallets.Credit(ctx, wallet.ID, transfer.AmountMinor, now); appErr != nil {
			return output, appErr
		}

		if u.transactions != nil {
			hash := *intent.TransactionHash
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
				UserIDTo:        &wallet.UserID,
				Description:     "On-chain deposit",
				CreatedAt:       now,
			})
		}
		output.Confirmed++
	}

	return output, nil
}
