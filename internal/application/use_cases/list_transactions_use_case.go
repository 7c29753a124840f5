package use_cases

import (
	"context"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type listTransactionsUseCase struct {
	transactions portsout.CryptoTransactionRepository
}

func NewListTransactionsUseCase(transactions portsout.CryptoTransactionRepository) portsin.ListTransactionsUseCase {
	return &listTransactionsUseCase{transactions: transactions}
}

func (u *listTransactionsUseCase) Execute(ctx context.Context, query dto.ListTransactionsQuery) ([]dto.TransactionResource, *apperrors.AppError) {
	if u.transactions == nil {
		return nil, apperrors.NewInternal(
			"crypto_transaction_repository_missing",
			"crypto transaction repository is required",
			nil,
		)
	}

	transactions, appErr := u.transactions.ListByUser(ctx, query.UserID)
	if appErr != nil {
		return nil, appErr
	}

	resources := make([]dto.TransactionResource, 0, len(transactions))
	for _, transaction := range transactions {
		resources = append(resources, mapTransactionResource(transaction))
	}

	return resources, nil
}
