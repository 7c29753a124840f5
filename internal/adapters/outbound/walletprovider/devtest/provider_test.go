package devtest

import (
	"context"
	"testing"

	"ticketpay/internal/fulfiller"
)

const (
	baseChainID  = int64(8453)
	usdcContract = "0x833589fcd6edb6e08f4c7c32d4f71b54bda02913"
)

func newConnectedSession(t *testing.T, provider *Provider) *fulfiller.Connector {
	t.Helper()

	connector := fulfiller.NewConnector(provider, baseChainID, usdcContract, nil, nil)
	if appErr := connector.Connect(context.Background()); appErr != nil {
		t.Fatalf("connect failed: %v", appErr)
	}
	return connector
}

func TestProviderTransferMovesTokenBalance(t *testing.T) {
	provider := NewProvider(Config{
		ChainID:       baseChainID,
		Accounts:      []string{"0xabc"},
		NativeBalance: "0.5",
	})
	provider.FundToken("0xabc", 50000000)

	connector := newConnectedSession(t, provider)

	hash, appErr := connector.SendToken(context.Background(), "0xdeposit", 20000000)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if hash == "" {
		t.Fatal("expected a transaction hash")
	}

	if provider.TokenBalance("0xabc") != 30000000 {
		t.Fatalf("expected sender balance 30000000, got %d", provider.TokenBalance("0xabc"))
	}
	if provider.TokenBalance("0xdeposit") != 20000000 {
		t.Fatalf("expected recipient balance 20000000, got %d", provider.TokenBalance("0xdeposit"))
	}
}

func TestProviderInsufficientBalanceErrorClassifies(t *testing.T) {
	provider := NewProvider(Config{ChainID: baseChainID, Accounts: []string{"0xabc"}, NativeBalance: "0.5"})
	connector := newConnectedSession(t, provider)

	_, appErr := connector.SendToken(context.Background(), "0xdeposit", 1000000)
	if appErr == nil {
		t.Fatal("expected transfer to fail")
	}
	if fulfiller.TransferErrorKind(appErr) != fulfiller.ProviderErrorInsufficientBalance {
		t.Fatalf("expected insufficient balance kind, got %s", fulfiller.TransferErrorKind(appErr))
	}
}

func TestProviderRejectNextTransferClassifies(t *testing.T) {
	provider := NewProvider(Config{ChainID: baseChainID, Accounts: []string{"0xabc"}, NativeBalance: "0.5"})
	provider.FundToken("0xabc", 50000000)
	provider.RejectNextTransfer()

	connector := newConnectedSession(t, provider)

	_, appErr := connector.SendToken(context.Background(), "0xdeposit", 1000000)
	if fulfiller.TransferErrorKind(appErr) != fulfiller.ProviderErrorUserRejected {
		t.Fatalf("expected user rejection kind, got %v", appErr)
	}

	// The rejection consumes the flag; the retry goes through.
	if _, appErr := connector.SendToken(context.Background(), "0xdeposit", 1000000); appErr != nil {
		t.Fatalf("expected retry to succeed, got %v", appErr)
	}
}

func TestProviderSwitchChainDisconnectsSession(t *testing.T) {
	provider := NewProvider(Config{ChainID: baseChainID, Accounts: []string{"0xabc"}, NativeBalance: "0.5"})
	connector := newConnectedSession(t, provider)

	provider.SwitchChain(1)

	if connector.State() != fulfiller.StateDisconnected {
		t.Fatalf("expected chain switch to disconnect, got %s", connector.State())
	}
}

func TestProviderUnsubscribeStopsNotifications(t *testing.T) {
	provider := NewProvider(Config{ChainID: baseChainID, Accounts: []string{"0xabc"}, NativeBalance: "0.5"})

	accountEvents := 0
	chainEvents := 0
	unsubscribeAccounts := provider.SubscribeAccountsChanged(func([]string) { accountEvents++ })
	unsubscribeChain := provider.SubscribeChainChanged(func(int64) { chainEvents++ })

	provider.SwitchAccounts([]string{"0xdef"})
	provider.SwitchChain(1)

	unsubscribeAccounts()
	unsubscribeChain()

	provider.SwitchAccounts([]string{"0xghi"})
	provider.SwitchChain(baseChainID)

	if accountEvents != 1 || chainEvents != 1 {
		t.Fatalf("expected one event each before unsubscribe, got accounts=%d chain=%d", accountEvents, chainEvents)
	}
}

func TestProviderDisconnectedSessionIgnoresAccountSwitch(t *testing.T) {
	provider := NewProvider(Config{ChainID: baseChainID, Accounts: []string{"0xabc"}, NativeBalance: "0.5"})
	connector := newConnectedSession(t, provider)

	connector.Disconnect()
	provider.SwitchAccounts([]string{"0xdef"})

	if connector.Account() != "" {
		t.Fatalf("expected no account after disconnect, got %s", connector.Account())
	}
}
