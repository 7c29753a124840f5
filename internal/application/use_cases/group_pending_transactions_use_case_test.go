//go:build !integration

package use_cases

import (
	"context"
	"testing"

	"ticketpay/internal/application/dto"
	"ticketpay/internal/domain/entities"
	valueobjects "ticketpay/internal/domain/value_objects"
)

func pendingRow(from, to int64, addressFrom, addressTo string, amountMinor int64) entities.CryptoTransaction {
	return entities.CryptoTransaction{
		TransactionType: entities.TransactionTypeDeposit,
		Status:          entities.TransactionStatusPending,
		AmountMinor:     amountMinor,
		TokenType:       valueobjects.TokenTypeUSDC,
		AddressFrom:     &addressFrom,
		AddressTo:       &addressTo,
		UserIDFrom:      &from,
		UserIDTo:        &to,
	}
}

func TestGroupPendingTransactionsFoldsByCounterparty(t *testing.T) {
	fakeTransactions := &fakeTransactionRepository{
		pending: []entities.CryptoTransaction{
			pendingRow(11, 1, "0xaaa", "0xdeposit", 10000000),
			pendingRow(11, 1, "0xaaa", "0xdeposit", 5000000),
			pendingRow(11, 1, "0xbbb", "0xdeposit", 40000000),
		},
	}
	useCase := NewGroupPendingTransactionsUseCase(fakeTransactions)

	groups, appErr := useCase.Execute(context.Background(), dto.GroupPendingTransactionsQuery{UserID: 11})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	if len(groups) != 2 {
		t.Fatalf("expected two groups, got %d", len(groups))
	}

	// Groups come back largest first.
	if groups[0].AddressFrom != "0xbbb" || groups[0].Amount != "40" || groups[0].Count != 1 {
		t.Fatalf("unexpected first group %+v", groups[0])
	}
	if groups[1].AddressFrom != "0xaaa" || groups[1].Amount != "15" || groups[1].Count != 2 {
		t.Fatalf("unexpected second group %+v", groups[1])
	}
}

func TestGroupPendingTransactionsSkipsRowsMissingIdentity(t *testing.T) {
	orphan := pendingRow(11, 1, "", "0xdeposit", 9000000)
	fakeTransactions := &fakeTransactionRepository{
		pending: []entities.CryptoTransaction{
			orphan,
			pendingRow(11, 1, "0xaaa", "0xdeposit", 10000000),
		},
	}
	useCase := NewGroupPendingTransactionsUseCase(fakeTransactions)

	groups, appErr := useCase.Execute(context.Background(), dto.GroupPendingTransactionsQuery{UserID: 11})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	if len(groups) != 1 {
		t.Fatalf("expected one group, got %d", len(groups))
	}
	if groups[0].Amount != "10" {
		t.Fatalf("expected orphan row excluded, got amount %s", groups[0].Amount)
	}
}
