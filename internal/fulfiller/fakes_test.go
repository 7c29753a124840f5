package fulfiller

import (
	"context"
	"strconv"
	"sync"
	"time"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type fakeBackend struct {
	listWithoutLimit      func(statuses []string) ([]dto.TicketResource, *apperrors.AppError)
	claim                 func(ticketID int64) (dto.TicketResource, *apperrors.AppError)
	complete              func(ticketID int64, imageURLs []string) (dto.CompleteTicketOutput, *apperrors.AppError)
	report                func(ticketID int64, reason, screenshotURL string) (dto.ReportTicketOutput, *apperrors.AppError)
	validate              func(ticketID int64) (dto.TicketResource, *apperrors.AppError)
	decline               func(ticketID int64) (dto.TicketResource, *apperrors.AppError)
	getWallet             func(walletType string) (dto.WalletResource, *apperrors.AppError)
	withdraw              func(amount, tokenType, addressTo string) (dto.WalletResource, *apperrors.AppError)
	uploadFiles           func(paths []string) ([]string, *apperrors.AppError)
	resolveDepositAddress func(amount, addressFrom string) (dto.DepositAddressResource, *apperrors.AppError)
	reportDeposit         func(transactionHash string) (dto.ReportDepositOutput, *apperrors.AppError)
	createWithdrawRequest func(amount, to string) (dto.WithdrawRequestResource, *apperrors.AppError)
}

func (f *fakeBackend) ListTicketsWithoutLimit(_ context.Context, statuses []string) ([]dto.TicketResource, *apperrors.AppError) {
	if f.listWithoutLimit == nil {
		return nil, nil
	}
	return f.listWithoutLimit(statuses)
}

func (f *fakeBackend) ClaimTicket(_ context.Context, ticketID int64) (dto.TicketResource, *apperrors.AppError) {
	if f.claim == nil {
		return dto.TicketResource{ID: ticketID}, nil
	}
	return f.claim(ticketID)
}

func (f *fakeBackend) CompleteTicket(_ context.Context, ticketID int64, imageURLs []string) (dto.CompleteTicketOutput, *apperrors.AppError) {
	if f.complete == nil {
		return dto.CompleteTicketOutput{}, nil
	}
	return f.complete(ticketID, imageURLs)
}

func (f *fakeBackend) ReportTicket(_ context.Context, ticketID int64, reason, screenshotURL string) (dto.ReportTicketOutput, *apperrors.AppError) {
	if f.report == nil {
		return dto.ReportTicketOutput{}, nil
	}
	return f.report(ticketID, reason, screenshotURL)
}

func (f *fakeBackend) ValidateTicket(_ context.Context, ticketID int64) (dto.TicketResource, *apperrors.AppError) {
	if f.validate == nil {
		return dto.TicketResource{ID: ticketID}, nil
	}
	return f.validate(ticketID)
}

func (f *fakeBackend) DeclineTicket(_ context.Context, ticketID int64) (dto.TicketResource, *apperrors.AppError) {
	if f.decline == nil {
		return dto.TicketResource{ID: ticketID}, nil
	}
	return f.decline(ticketID)
}

func (f *fakeBackend) GetWallet(_ context.Context, walletType string) (dto.WalletResource, *apperrors.AppError) {
	if f.getWallet == nil {
		return dto.WalletResource{}, nil
	}
	return f.getWallet(walletType)
}

func (f *fakeBackend) Withdraw(_ context.Context, amount, tokenType, addressTo string) (dto.WalletResource, *apperrors.AppError) {
	if f.withdraw == nil {
		return dto.WalletResource{}, nil
	}
	return f.withdraw(amount, tokenType, addressTo)
}

func (f *fakeBackend) UploadFiles(_ context.Context, paths []string) ([]string, *apperrors.AppError) {
	if f.uploadFiles == nil {
		return paths, nil
	}
	return f.uploadFiles(paths)
}

func (f *fakeBackend) ResolveDepositAddress(_ context.Context, amount, addressFrom string) (dto.DepositAddressResource, *apperrors.AppError) {
	if f.resolveDepositAddress == nil {
		return dto.DepositAddressResource{}, nil
	}
	return f.resolveDepositAddress(amount, addressFrom)
}

func (f *fakeBackend) ReportDeposit(_ context.Context, transactionHash string) (dto.ReportDepositOutput, *apperrors.AppError) {
	if f.reportDeposit == nil {
		return dto.ReportDepositOutput{Status: "pending"}, nil
	}
	return f.reportDeposit(transactionHash)
}

func (f *fakeBackend) CreateWithdrawRequest(_ context.Context, amount, to string) (dto.WithdrawRequestResource, *apperrors.AppError) {
	if f.createWithdrawRequest == nil {
		return dto.WithdrawRequestResource{ID: 1, Amount: amount, ToAddress: to}, nil
	}
	return f.createWithdrawRequest(amount, to)
}

type recordingAlerts struct {
	mu       sync.Mutex
	messages []string
	sounds   int
}

func (a *recordingAlerts) Notify(message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append(a.messages, message)
}

func (a *recordingAlerts) PlaySound() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sounds++
}

func (a *recordingAlerts) Messages() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.messages...)
}

func (a *recordingAlerts) Sounds() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sounds
}

type fakeProvider struct {
	mu              sync.Mutex
	chainID         int64
	accounts        []string
	nativeBalance   string
	transferHash    string
	transferErr     error
	transfers       int
	accountsHandler func([]string)
	chainHandler    func(int64)
}

func (p *fakeProvider) RequestAccounts(context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.accounts...), nil
}

func (p *fakeProvider) ChainID(context.Context) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.chainID, nil
}

func (p *fakeProvider) NativeBalance(context.Context, string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.nativeBalance, nil
}

func (p *fakeProvider) TransferToken(context.Context, string, string, string, int64) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transfers++
	if p.transferErr != nil {
		return "", p.transferErr
	}
	return p.transferHash, nil
}

func (p *fakeProvider) SubscribeAccountsChanged(handler func([]string)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.accountsHandler = handler
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.accountsHandler = nil
	}
}

func (p *fakeProvider) SubscribeChainChanged(handler func(int64)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chainHandler = handler
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.chainHandler = nil
	}
}

func (p *fakeProvider) subscriberCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	count := 0
	if p.accountsHandler != nil {
		count++
	}
	if p.chainHandler != nil {
		count++
	}
	return count
}

func (p *fakeProvider) emitAccountsChanged(accounts []string) {
	p.mu.Lock()
	handler := p.accountsHandler
	p.mu.Unlock()
	if handler != nil {
		handler(accounts)
	}
}

func (p *fakeProvider) emitChainChanged(chainID int64) {
	p.mu.Lock()
	handler := p.chainHandler
	p.mu.Unlock()
	if handler != nil {
		handler(chainID)
	}
}

func (p *fakeProvider) transferCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.transfers
}

func ticketFixture(id int64, status, amount string) dto.TicketResource {
	return dto.TicketResource{
		ID:           id,
		TicketID:     "TCK-" + strconv.FormatInt(id, 10),
		Status:       status,
		Amount:       amount,
		TokenType:    "USDC",
		FacebookName: "John Smith",
		Game:         "slots",
		DomainID:     1,
		CreatedAt:    time.Unix(1700000000+id, 0).UTC(),
	}
}
