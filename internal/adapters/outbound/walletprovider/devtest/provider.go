package devtest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"ticketpay/internal/fulfiller"
)

// Provider is an in-memory wallet used in development and tests. It
// keeps per-account token balances for the configured contract and
// reproduces the provider error strings the session classifies on.
type Provider struct {
	mu sync.Mutex

	chainID       int64
	accounts      []string
	nativeBalance string
	tokenBalances map[string]int64

	rejectNext bool
	nextNonce  int64

	nextHandlerID    int64
	accountsHandlers map[int64]func([]string)
	chainHandlers    map[int64]func(int64)
}

var _ fulfiller.Provider = (*Provider)(nil)

type Config struct {
	ChainID       int64
	Accounts      []string
	NativeBalance string
}

func NewProvider(cfg Config) *Provider {
	return &Provider{
		chainID:          cfg.ChainID,
		accounts:         append([]string(nil), cfg.Accounts...),
		nativeBalance:    cfg.NativeBalance,
		tokenBalances:    map[string]int64{},
		accountsHandlers: map[int64]func([]string){},
		chainHandlers:    map[int64]func(int64){},
	}
}

func (p *Provider) RequestAccounts(context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.accounts...), nil
}

func (p *Provider) ChainID(context.Context) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.chainID, nil
}

func (p *Provider) NativeBalance(_ context.Context, account string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.nativeBalance, nil
}

// TransferToken debits the sender's token balance and returns a
// deterministic hash. Confirmation is immediate here; a real provider
// blocks until the transfer is mined.
func (p *Provider) TransferToken(_ context.Context, tokenContract, from, to string, amountMinor int64) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.rejectNext {
		p.rejectNext = false
		return "", errors.New("user rejected the request")
	}

	balance := p.tokenBalances[from]
	if amountMinor > balance {
		return "", errors.New("execution reverted: ERC20: transfer amount exceeds balance")
	}

	p.tokenBalances[from] = balance - amountMinor
	p.tokenBalances[to] += amountMinor
	p.nextNonce++

	return fmt.Sprintf("0x%064x", p.nextNonce), nil
}

func (p *Provider) SubscribeAccountsChanged(handler func(accounts []string)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextHandlerID
	p.nextHandlerID++
	p.accountsHandlers[id] = handler

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.accountsHandlers, id)
	}
}

func (p *Provider) SubscribeChainChanged(handler func(chainID int64)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextHandlerID
	p.nextHandlerID++
	p.chainHandlers[id] = handler

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.chainHandlers, id)
	}
}

// FundToken seeds an account's token balance.
func (p *Provider) FundToken(account string, amountMinor int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tokenBalances[account] += amountMinor
}

// TokenBalance reads an account's token balance.
func (p *Provider) TokenBalance(account string) int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tokenBalances[account]
}

// RejectNextTransfer makes the following transfer fail as a user
// rejection.
func (p *Provider) RejectNextTransfer() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rejectNext = true
}

// SwitchAccounts replaces the account list and notifies subscribers.
// Handlers run outside the lock so they may unsubscribe.
func (p *Provider) SwitchAccounts(accounts []string) {
	p.mu.Lock()
	p.accounts = append([]string(nil), accounts...)
	handlers := make([]func([]string), 0, len(p.accountsHandlers))
	for _, handler := range p.accountsHandlers {
		handlers = append(handlers, handler)
	}
	p.mu.Unlock()

	for _, handler := range handlers {
		handler(append([]string(nil), accounts...))
	}
}

// SwitchChain changes the chain id and notifies subscribers.
func (p *Provider) SwitchChain(chainID int64) {
	p.mu.Lock()
	p.chainID = chainID
	handlers := make([]func(int64), 0, len(p.chainHandlers))
	for _, handler := range p.chainHandlers {
		handlers = append(handlers, handler)
	}
	p.mu.Unlock()

	for _, handler := range handlers {
		handler(chainID)
	}
}
