package use_cases

import (
	"context"
	"sort"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	"ticketpay/internal/domain/entities"
	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type groupPendingTransactionsUseCase struct {
	transactions portsout.CryptoTransactionRepository
}

func NewGroupPendingTransactionsUseCase(transactions portsout.CryptoTransactionRepository) portsin.GroupPendingTransactionsUseCase {
	return &groupPendingTransactionsUseCase{transactions: transactions}
}

// Pending rows fold by counterparty tuple, summing amounts. Rows with
// any missing identity field are left out of every group.
func (u *groupPendingTransactionsUseCase) Execute(ctx context.Context, query dto.GroupPendingTransactionsQuery) ([]dto.PendingGroupResource, *apperrors.AppError) {
	if u.transactions == nil {
		return nil, apperrors.NewInternal(
			"crypto_transaction_repository_missing",
			"crypto transaction repository is required",
			nil,
		)
	}

	pending, appErr := u.transactions.ListPendingByUser(ctx, query.UserID)
	if appErr != nil {
		return nil, appErr
	}

	type group struct {
		key         entities.PendingGroupKey
		amountMinor int64
		count       int
	}

	groups := map[entities.PendingGroupKey]*group{}
	order := make([]entities.PendingGroupKey, 0, len(pending))
	for _, transaction := range pending {
		key, ok := transaction.GroupKey()
		if !ok {
			continue
		}

		existing, found := groups[key]
		if !found {
			existing = &group{key: key}
			groups[key] = existing
			order = append(order, key)
		}
		existing.amountMinor += transaction.AmountMinor
		existing.count++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return groups[order[i]].amountMinor > groups[order[j]].amountMinor
	})

	resources := make([]dto.PendingGroupResource, 0, len(order))
	for _, key := range order {
		g := groups[key]
		resources = append(resources, dto.PendingGroupResource{
			UserIDFrom:  g.key.UserIDFrom,
			UserIDTo:    g.key.UserIDTo,
			AddressFrom: g.key.AddressFrom,
			AddressTo:   g.key.AddressTo,
			TokenType:   g.key.TokenType.String(),
			Amount:      valueobjects.FormatAmountMinor(g.amountMinor),
			Count:       g.count,
		})
	}

	return resources, nil
}
