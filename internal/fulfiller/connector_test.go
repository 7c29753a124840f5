package fulfiller

import (
	"context"
	"errors"
	"testing"
)

const (
	baseChainID      = int64(8453)
	testUSDCContract = "0x833589fcd6edb6e08f4c7c32d4f71b54bda02913"
)

func TestConnectorConnectStoresAccountAndBalance(t *testing.T) {
	provider := &fakeProvider{
		chainID:       baseChainID,
		accounts:      []string{"0xabc", "0xdef"},
		nativeBalance: "0.42",
	}
	connector := NewConnector(provider, baseChainID, testUSDCContract, nil, nil)

	if appErr := connector.Connect(context.Background()); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	if connector.State() != StateConnected {
		t.Fatalf("expected connected, got %s", connector.State())
	}
	if connector.Account() != "0xabc" {
		t.Fatalf("expected first account retained, got %s", connector.Account())
	}
	if connector.NativeBalance() != "0.42" {
		t.Fatalf("expected native balance stored, got %s", connector.NativeBalance())
	}
}

func TestConnectorRejectsWrongChain(t *testing.T) {
	alerts := &recordingAlerts{}
	provider := &fakeProvider{chainID: 1, accounts: []string{"0xabc"}}
	connector := NewConnector(provider, baseChainID, testUSDCContract, alerts, nil)

	appErr := connector.Connect(context.Background())
	if appErr == nil || appErr.Code != "wallet_wrong_network" {
		t.Fatalf("expected wallet_wrong_network, got %v", appErr)
	}

	if connector.State() != StateDisconnected {
		t.Fatalf("expected disconnected after wrong chain, got %s", connector.State())
	}
	messages := alerts.Messages()
	if len(messages) != 1 || messages[0] != "Please connect to the Base mainnet." {
		t.Fatalf("expected network alert, got %v", messages)
	}
}

func TestConnectorDisconnectClearsEverything(t *testing.T) {
	provider := &fakeProvider{chainID: baseChainID, accounts: []string{"0xabc"}, nativeBalance: "1"}
	connector := NewConnector(provider, baseChainID, testUSDCContract, nil, nil)

	if appErr := connector.Connect(context.Background()); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	connector.Disconnect()
	connector.Disconnect()

	if connector.State() != StateDisconnected {
		t.Fatalf("expected disconnected, got %s", connector.State())
	}
	if connector.Account() != "" || connector.NativeBalance() != "" {
		t.Fatal("expected account and balance cleared")
	}
}

func TestConnectorDisconnectRemovesProviderListeners(t *testing.T) {
	provider := &fakeProvider{chainID: baseChainID, accounts: []string{"0xabc"}, nativeBalance: "1"}
	connector := NewConnector(provider, baseChainID, testUSDCContract, nil, nil)

	if appErr := connector.Connect(context.Background()); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if provider.subscriberCount() != 2 {
		t.Fatalf("expected both listeners registered, got %d", provider.subscriberCount())
	}

	connector.Disconnect()
	if provider.subscriberCount() != 0 {
		t.Fatalf("expected listeners removed on disconnect, got %d", provider.subscriberCount())
	}

	// A stale emit after disconnect must reach nothing.
	provider.emitAccountsChanged([]string{"0xnew"})
	if connector.Account() != "" {
		t.Fatalf("expected no handler after disconnect, got account %s", connector.Account())
	}

	if appErr := connector.Connect(context.Background()); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if provider.subscriberCount() != 2 {
		t.Fatalf("expected listeners re-registered on reconnect, got %d", provider.subscriberCount())
	}
}

func TestConnectorAccountsChangedToEmptyDisconnects(t *testing.T) {
	provider := &fakeProvider{chainID: baseChainID, accounts: []string{"0xabc"}, nativeBalance: "1"}
	connector := NewConnector(provider, baseChainID, testUSDCContract, nil, nil)

	if appErr := connector.Connect(context.Background()); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	provider.emitAccountsChanged([]string{"0xnew"})
	if connector.State() != StateConnected || connector.Account() != "0xnew" {
		t.Fatalf("expected account switch to keep connection, got %s %s", connector.State(), connector.Account())
	}

	provider.emitAccountsChanged(nil)
	if connector.State() != StateDisconnected {
		t.Fatalf("expected empty accounts to disconnect, got %s", connector.State())
	}
}

func TestConnectorChainChangedDisconnects(t *testing.T) {
	provider := &fakeProvider{chainID: baseChainID, accounts: []string{"0xabc"}, nativeBalance: "1"}
	connector := NewConnector(provider, baseChainID, testUSDCContract, nil, nil)

	if appErr := connector.Connect(context.Background()); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	// Even a change onto the expected chain tears the session down.
	provider.emitChainChanged(baseChainID)
	if connector.State() != StateDisconnected {
		t.Fatalf("expected chain change to disconnect, got %s", connector.State())
	}
}

func TestConnectorSendTokenRequiresConnection(t *testing.T) {
	connector := NewConnector(&fakeProvider{}, baseChainID, testUSDCContract, nil, nil)

	if _, appErr := connector.SendToken(context.Background(), "0xto", 1000000); appErr == nil || appErr.Code != "wallet_not_connected" {
		t.Fatalf("expected wallet_not_connected, got %v", appErr)
	}
}

func TestClassifyProviderError(t *testing.T) {
	cases := []struct {
		err  error
		want ProviderErrorKind
	}{
		{errors.New("user rejected the request"), ProviderErrorUserRejected},
		{errors.New("execution reverted: ERC20: transfer amount exceeds balance"), ProviderErrorInsufficientBalance},
		{errors.New("nonce too low"), ProviderErrorUnknown},
		{nil, ProviderErrorUnknown},
	}

	for _, tc := range cases {
		if got := ClassifyProviderError(tc.err); got != tc.want {
			t.Fatalf("ClassifyProviderError(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}
