package fulfiller

import (
	"context"
	"log"
	"strings"
	"sync"

	apperrors "ticketpay/internal/shared_kernel/errors"
)

type ConnectionState string

const (
	StateDisconnected ConnectionState = "disconnected"
	StateConnecting   ConnectionState = "connecting"
	StateConnected    ConnectionState = "connected"
)

const wrongNetworkMessage = "Please connect to the Base mainnet."

// ProviderErrorKind classifies wallet provider failures so callers can
// decide between aborting silently, surfacing a message and retrying.
type ProviderErrorKind string

const (
	ProviderErrorUnknown             ProviderErrorKind = "unknown"
	ProviderErrorUserRejected        ProviderErrorKind = "user_rejected"
	ProviderErrorInsufficientBalance ProviderErrorKind = "insufficient_balance"
	ProviderErrorWrongNetwork        ProviderErrorKind = "wrong_network"
)

// ClassifyProviderError maps raw provider error text onto a kind.
// Providers do not return structured codes for these cases, only
// well-known message fragments.
func ClassifyProviderError(err error) ProviderErrorKind {
	if err == nil {
		return ProviderErrorUnknown
	}

	message := err.Error()
	switch {
	case strings.Contains(message, "rejected"):
		return ProviderErrorUserRejected
	case strings.Contains(message, "ERC20: transfer amount exceeds balance"):
		return ProviderErrorInsufficientBalance
	default:
		return ProviderErrorUnknown
	}
}

// Provider abstracts the wallet a session signs with. TransferToken
// sends the configured ERC-20 and returns the transaction hash after
// one confirmation.
type Provider interface {
	RequestAccounts(ctx context.Context) ([]string, error)
	ChainID(ctx context.Context) (int64, error)
	NativeBalance(ctx context.Context, account string) (string, error)
	TransferToken(ctx context.Context, tokenContract, from, to string, amountMinor int64) (string, error)
	SubscribeAccountsChanged(handler func(accounts []string)) (unsubscribe func())
	SubscribeChainChanged(handler func(chainID int64)) (unsubscribe func())
}

// Connector runs the wallet connection state machine. Only the expected
// chain is accepted; an account change to empty or any chain change
// forces a disconnect because the signing context is gone either way.
type Connector struct {
	provider      Provider
	chainID       int64
	tokenContract string
	alerts        AlertSink
	logger        *log.Logger

	mu            sync.Mutex
	state         ConnectionState
	account       string
	nativeBalance string
	unsubscribes  []func()
}

func NewConnector(provider Provider, chainID int64, tokenContract string, alerts AlertSink, logger *log.Logger) *Connector {
	if alerts == nil {
		alerts = NopAlertSink{}
	}

	return &Connector{
		provider:      provider,
		chainID:       chainID,
		tokenContract: tokenContract,
		alerts:        alerts,
		logger:        logger,
		state:         StateDisconnected,
	}
}

func (c *Connector) State() ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Connector) Account() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.account
}

func (c *Connector) NativeBalance() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nativeBalance
}

// Connect walks disconnected -> connecting -> connected. Any failure
// along the way lands back in disconnected with nothing retained.
func (c *Connector) Connect(ctx context.Context) *apperrors.AppError {
	if c.provider == nil {
		return apperrors.NewValidation("wallet_provider_missing", "no wallet provider is configured", nil)
	}

	c.mu.Lock()
	if c.state == StateConnected {
		c.mu.Unlock()
		return nil
	}
	c.state = StateConnecting
	c.mu.Unlock()

	chainID, err := c.provider.ChainID(ctx)
	if err != nil {
		c.resetLocked()
		return c.providerFailure("wallet_chain_unavailable", err)
	}
	if chainID != c.chainID {
		c.resetLocked()
		c.alerts.Notify(wrongNetworkMessage)
		return apperrors.NewValidation("wallet_wrong_network", wrongNetworkMessage, map[string]any{
			"kind":              string(ProviderErrorWrongNetwork),
			"expected_chain_id": c.chainID,
			"actual_chain_id":   chainID,
		})
	}

	accounts, err := c.provider.RequestAccounts(ctx)
	if err != nil {
		c.resetLocked()
		return c.providerFailure("wallet_accounts_unavailable", err)
	}
	if len(accounts) == 0 {
		c.resetLocked()
		return apperrors.NewValidation("wallet_no_accounts", "the wallet exposed no accounts", nil)
	}

	account := accounts[0]
	balance, err := c.provider.NativeBalance(ctx, account)
	if err != nil {
		c.resetLocked()
		return c.providerFailure("wallet_balance_unavailable", err)
	}

	c.mu.Lock()
	c.state = StateConnected
	c.account = account
	c.nativeBalance = balance
	subscribe := c.unsubscribes == nil
	c.mu.Unlock()

	if subscribe {
		unsubscribeAccounts := c.provider.SubscribeAccountsChanged(c.onAccountsChanged)
		unsubscribeChain := c.provider.SubscribeChainChanged(c.onChainChanged)
		c.mu.Lock()
		c.unsubscribes = []func(){unsubscribeAccounts, unsubscribeChain}
		c.mu.Unlock()
	}

	c.logf("wallet connected account=%s chain_id=%d", account, chainID)
	return nil
}

// Disconnect clears the connection and removes the provider listeners.
// Safe to call in any state. Listener removal happens outside the
// connector lock since it re-enters the provider.
func (c *Connector) Disconnect() {
	c.mu.Lock()
	wasConnected := c.state != StateDisconnected
	c.state = StateDisconnected
	c.account = ""
	c.nativeBalance = ""
	unsubscribes := c.unsubscribes
	c.unsubscribes = nil
	c.mu.Unlock()

	for _, unsubscribe := range unsubscribes {
		unsubscribe()
	}
	if wasConnected {
		c.logf("wallet disconnected")
	}
}

// SendToken transfers the configured token and refreshes the native
// balance once the provider reports the transfer confirmed.
func (c *Connector) SendToken(ctx context.Context, to string, amountMinor int64) (string, *apperrors.AppError) {
	c.mu.Lock()
	state := c.state
	account := c.account
	c.mu.Unlock()

	if state != StateConnected {
		return "", apperrors.NewValidation("wallet_not_connected", "connect a wallet before sending", nil)
	}

	transactionHash, err := c.provider.TransferToken(ctx, c.tokenContract, account, to, amountMinor)
	if err != nil {
		return "", c.transferFailure(err)
	}

	if balance, balanceErr := c.provider.NativeBalance(ctx, account); balanceErr == nil {
		c.mu.Lock()
		if c.state == StateConnected {
			c.nativeBalance = balance
		}
		c.mu.Unlock()
	}

	c.logf("token transfer confirmed to=%s amount_minor=%d tx_hash=%s", to, amountMinor, transactionHash)
	return transactionHash, nil
}

func (c *Connector) onAccountsChanged(accounts []string) {
	if len(accounts) == 0 {
		c.Disconnect()
		return
	}

	c.mu.Lock()
	if c.state == StateConnected {
		c.account = accounts[0]
	}
	c.mu.Unlock()
}

func (c *Connector) onChainChanged(chainID int64) {
	c.logf("wallet chain changed chain_id=%d", chainID)
	c.Disconnect()
}

func (c *Connector) resetLocked() {
	c.mu.Lock()
	c.state = StateDisconnected
	c.account = ""
	c.nativeBalance = ""
	c.mu.Unlock()
}

func (c *Connector) providerFailure(code string, err error) *apperrors.AppError {
	kind := ClassifyProviderError(err)
	return apperrors.NewInternal(code, err.Error(), map[string]any{"kind": string(kind)})
}

func (c *Connector) transferFailure(err error) *apperrors.AppError {
	kind := ClassifyProviderError(err)
	details := map[string]any{"kind": string(kind)}

	switch kind {
	case ProviderErrorUserRejected:
		return apperrors.NewValidation("wallet_transfer_rejected", err.Error(), details)
	case ProviderErrorInsufficientBalance:
		return apperrors.NewValidation("wallet_insufficient_balance", err.Error(), details)
	default:
		return apperrors.NewInternal("wallet_transfer_failed", err.Error(), details)
	}
}

// TransferErrorKind extracts the provider error kind recorded on a
// transfer failure.
func TransferErrorKind(appErr *apperrors.AppError) ProviderErrorKind {
	if appErr == nil || appErr.Details == nil {
		return ProviderErrorUnknown
	}

	kind, ok := appErr.Details["kind"].(string)
	if !ok {
		return ProviderErrorUnknown
	}
	return ProviderErrorKind(kind)
}

func (c *Connector) logf(format string, args ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Printf(format, args...)
}
