//go:build !integration

package use_cases

import (
	"context"
	"testing"
	"time"

	"ticketpay/internal/application/dto"
	"ticketpay/internal/domain/entities"
	valueobjects "ticketpay/internal/domain/value_objects"
)

func customerWallet(balanceMinor int64) entities.Wallet {
	return entities.Wallet{
		ID:           4,
		UserID:       11,
		Type:         valueobjects.WalletTypeCustomer,
		TokenType:    valueobjects.TokenTypeUSDC,
		BalanceMinor: balanceMinor,
	}
}

func TestWithdrawFromWalletUseCaseRejectsInvalidAmount(t *testing.T) {
	fakeWallets := &fakeWalletRepository{}
	useCase := NewWithdrawFromWalletUseCase(fakeWallets, &fakeTransactionRepository{}, fixedClock{})

	for _, amount := range []string{"", "0", "-5", "abc"} {
		_, appErr := useCase.Execute(context.Background(), dto.WalletTransferCommand{UserID: 11, Amount: amount})
		if appErr == nil {
			t.Fatalf("expected validation error for amount %q", amount)
		}
		if appErr.Message != "Minium withdrawable amount should be greater than 0 USDC" {
			t.Fatalf("unexpected message for amount %q: %q", amount, appErr.Message)
		}
	}

	if fakeWallets.debits != 0 {
		t.Fatalf("expected no debit attempt, got %d", fakeWallets.debits)
	}
}

func TestWithdrawFromWalletUseCaseRejectsOverdraw(t *testing.T) {
	fakeWallets := &fakeWalletRepository{getByUserAndTypeResult: customerWallet(10500000)}
	useCase := NewWithdrawFromWalletUseCase(fakeWallets, &fakeTransactionRepository{}, fixedClock{})

	_, appErr := useCase.Execute(context.Background(), dto.WalletTransferCommand{UserID: 11, Amount: "25"})
	if appErr == nil || appErr.Code != "insufficient_balance" {
		t.Fatalf("expected insufficient_balance, got %v", appErr)
	}
	if appErr.Message != "Maximum withdrawable amount is 10.5 USDC" {
		t.Fatalf("unexpected message %q", appErr.Message)
	}
	if fakeWallets.debits != 0 {
		t.Fatalf("expected no debit attempt, got %d", fakeWallets.debits)
	}
}

func TestWithdrawFromWalletUseCaseDebitsCustomerWallet(t *testing.T) {
	now := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	fakeWallets := &fakeWalletRepository{
		getByUserAndTypeResult: customerWallet(50000000),
		debitResult:            customerWallet(37500000),
	}
	fakeTransactions := &fakeTransactionRepository{}
	useCase := NewWithdrawFromWalletUseCase(fakeWallets, fakeTransactions, fixedClock{now: now})

	resource, appErr := useCase.Execute(context.Background(), dto.WalletTransferCommand{
		UserID:    11,
		Amount:    "12.5",
		AddressTo: "0x9fb7239a4f2d9b6a1c0f6912f2a3ccbeffa35af0",
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	if fakeWallets.lastWalletType != valueobjects.WalletTypeCustomer {
		t.Fatalf("expected customer wallet lookup, got %s", fakeWallets.lastWalletType)
	}
	if fakeWallets.lastDebitAmount != 12500000 {
		t.Fatalf("expected debit of 12500000, got %d", fakeWallets.lastDebitAmount)
	}
	if resource.Balance != "37.5" {
		t.Fatalf("expected balance 37.5, got %s", resource.Balance)
	}

	if len(fakeTransactions.inserts) != 1 {
		t.Fatalf("expected one ledger row, got %d", len(fakeTransactions.inserts))
	}
	row := fakeTransactions.inserts[0]
	if row.TransactionType != entities.TransactionTypeWithdraw {
		t.Fatalf("expected withdraw row, got %s", row.TransactionType)
	}
	if row.UserIDFrom == nil || *row.UserIDFrom != 11 {
		t.Fatalf("expected user 11 as sender, got %v", row.UserIDFrom)
	}
	if row.AddressTo == nil || *row.AddressTo != "0x9fb7239a4f2d9b6a1c0f6912f2a3ccbeffa35af0" {
		t.Fatalf("expected destination address on row, got %v", row.AddressTo)
	}
}
