//go:build !integration

package use_cases

import (
	"context"
	"time"

	"ticketpay/internal/domain/entities"
	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) NowUTC() time.Time {
	return c.now
}

type fakeTicketRepository struct {
	getByIDResult  entities.Ticket
	getByIDErr     *apperrors.AppError
	claimResult    entities.Ticket
	claimErr       *apperrors.AppError
	completeResult entities.Ticket
	completeErr    *apperrors.AppError

	claims          int
	completes       int
	lastFulfillerID int64
	lastImageURLs   []string
	lastCompletedAt time.Time
}

func (f *fakeTicketRepository) Create(_ context.Context, ticket entities.Ticket) (entities.Ticket, *apperrors.AppError) {
	return ticket, nil
}

func (f *fakeTicketRepository) GetByID(_ context.Context, _ int64) (entities.Ticket, *apperrors.AppError) {
	return f.getByIDResult, f.getByIDErr
}

func (f *fakeTicketRepository) List(_ context.Context, _ string, _, _ int) ([]entities.Ticket, int64, *apperrors.AppError) {
	return nil, 0, nil
}

func (f *fakeTicketRepository) ListByStatuses(_ context.Context, _ []string) ([]entities.Ticket, *apperrors.AppError) {
	return nil, nil
}

func (f *fakeTicketRepository) TransitionStatus(
	_ context.Context,
	_ int64,
	_, _ valueobjects.TicketStatus,
) (entities.Ticket, *apperrors.AppError) {
	return entities.Ticket{}, nil
}

func (f *fakeTicketRepository) Claim(_ context.Context, _, fulfillerID int64) (entities.Ticket, *apperrors.AppError) {
	f.claims++
	f.lastFulfillerID = fulfillerID
	return f.claimResult, f.claimErr
}

func (f *fakeTicketRepository) Complete(
	_ context.Context,
	_ int64,
	imageURLs []string,
	completedAt time.Time,
) (entities.Ticket, *apperrors.AppError) {
	f.completes++
	f.lastImageURLs = imageURLs
	f.lastCompletedAt = completedAt
	return f.completeResult, f.completeErr
}

func (f *fakeTicketRepository) Report(
	_ context.Context,
	_ int64,
	_ valueobjects.ReportReason,
	_ string,
) (entities.Ticket, *apperrors.AppError) {
	return entities.Ticket{}, nil
}

type fakeWalletRepository struct {
	getByUserAndTypeResult entities.Wallet
	getByUserAndTypeErr    *apperrors.AppError
	creditResult           entities.Wallet
	creditErr              *apperrors.AppError
	debitResult            entities.Wallet
	debitErr               *apperrors.AppError

	credits          int
	debits           int
	lastWalletType   valueobjects.WalletType
	lastCreditAmount int64
	lastDebitAmount  int64
}

func (f *fakeWalletRepository) Create(_ context.Context, wallet entities.Wallet) (entities.Wallet, *apperrors.AppError) {
	return wallet, nil
}

func (f *fakeWalletRepository) GetByID(_ context.Context, _ int64) (entities.Wallet, *apperrors.AppError) {
	return entities.Wallet{}, nil
}

func (f *fakeWalletRepository) GetByUserAndType(
	_ context.Context,
	_ int64,
	walletType valueobjects.WalletType,
) (entities.Wallet, *apperrors.AppError) {
	f.lastWalletType = walletType
	return f.getByUserAndTypeResult, f.getByUserAndTypeErr
}

func (f *fakeWalletRepository) ListByUser(_ context.Context, _ int64) ([]entities.Wallet, *apperrors.AppError) {
	return nil, nil
}

func (f *fakeWalletRepository) GetByAddress(_ context.Context, _ string) (entities.Wallet, *apperrors.AppError) {
	return entities.Wallet{}, nil
}

func (f *fakeWalletRepository) SetAddress(_ context.Context, _ int64, _ string, _ time.Time) (entities.Wallet, *apperrors.AppError) {
	return entities.Wallet{}, nil
}

func (f *fakeWalletRepository) Credit(_ context.Context, _, amountMinor int64, _ time.Time) (entities.Wallet, *apperrors.AppError) {
	f.credits++
	f.lastCreditAmount = amountMinor
	return f.creditResult, f.creditErr
}

func (f *fakeWalletRepository) Debit(_ context.Context, _, amountMinor int64, _ time.Time) (entities.Wallet, *apperrors.AppError) {
	f.debits++
	f.lastDebitAmount = amountMinor
	return f.debitResult, f.debitErr
}

type fakeTransactionRepository struct {
	insertErr *apperrors.AppError
	inserts   []entities.CryptoTransaction
	pending   []entities.CryptoTransaction
}

func (f *fakeTransactionRepository) Insert(_ context.Context, transaction entities.CryptoTransaction) (entities.CryptoTransaction, *apperrors.AppError) {
	if f.insertErr != nil {
		return entities.CryptoTransaction{}, f.insertErr
	}

	transaction.ID = int64(len(f.inserts) + 1)
	f.inserts = append(f.inserts, transaction)
	return transaction, nil
}

func (f *fakeTransactionRepository) ListByUser(_ context.Context, _ int64) ([]entities.CryptoTransaction, *apperrors.AppError) {
	return nil, nil
}

func (f *fakeTransactionRepository) ListPendingByUser(_ context.Context, _ int64) ([]entities.CryptoTransaction, *apperrors.AppError) {
	return f.pending, nil
}

func (f *fakeTransactionRepository) Update(
	_ context.Context,
	_ int64,
	_ entities.TransactionStatus,
	_ string,
) (entities.CryptoTransaction, *apperrors.AppError) {
	return entities.CryptoTransaction{}, nil
}

type fakeNotificationOutbox struct {
	enqueueErr *apperrors.AppError
	enqueued   []entities.Notification
}

func (f *fakeNotificationOutbox) Enqueue(_ context.Context, notification entities.Notification) (entities.Notification, *apperrors.AppError) {
	if f.enqueueErr != nil {
		return entities.Notification{}, f.enqueueErr
	}

	notification.ID = int64(len(f.enqueued) + 1)
	f.enqueued = append(f.enqueued, notification)
	return notification, nil
}

func (f *fakeNotificationOutbox) ClaimPendingForDispatch(
	_ context.Context,
	_ time.Time,
	_ int,
	_ string,
	_ time.Time,
) ([]entities.Notification, *apperrors.AppError) {
	return nil, nil
}

func (f *fakeNotificationOutbox) MarkSent(_ context.Context, _ int64, _ string, _ time.Time) (bool, *apperrors.AppError) {
	return true, nil
}

func (f *fakeNotificationOutbox) MarkRetry(
	_ context.Context,
	_ int64,
	_ string,
	_ int,
	_ time.Time,
	_ string,
	_ time.Time,
) (bool, *apperrors.AppError) {
	return true, nil
}

func (f *fakeNotificationOutbox) MarkFailed(
	_ context.Context,
	_ int64,
	_ string,
	_ int,
	_ string,
	_ time.Time,
) (bool, *apperrors.AppError) {
	return true, nil
}
