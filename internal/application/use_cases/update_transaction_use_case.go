package use_cases

import (
	"context"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	"ticketpay/internal/domain/entities"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type updateTransactionUseCase struct {
	transactions portsout.CryptoTransactionRepository
}

func NewUpdateTransactionUseCase(transactions portsout.CryptoTransactionRepository) portsin.UpdateTransactionUseCase {
	return &updateTransactionUseCase{transactions: transactions}
}

func (u *updateTransactionUseCase) Execute(ctx context.Context, command dto.UpdateTransactionCommand) (dto.TransactionResource, *apperrors.AppError) {
	if u.transactions == nil {
		return dto.TransactionResource{}, apperrors.NewInternal(
			"crypto_transaction_repository_missing",
			"crypto transaction repository is required",
			nil,
		)
	}

	status, appErr := entities.ParseTransactionStatus(command.Status)
	if appErr != nil {
		return dto.TransactionResource{}, appErr
	}

	transaction, appErr := u.transactions.Update(ctx, command.TransactionID, status, command.TransactionHash)
	if appErr != nil {
		return dto.TransactionResource{}, appErr
	}

	return mapTransactionResource(transaction), nil
}
