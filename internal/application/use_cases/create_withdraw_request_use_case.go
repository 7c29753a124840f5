package use_cases

import (
	"context"
	"fmt"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	"ticketpay/internal/domain/entities"
	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type createWithdrawRequestUseCase struct {
	requests portsout.WithdrawRequestRepository
	wallets  portsout.WalletRepository
	clock    Clock
}

func NewCreateWithdrawRequestUseCase(
	requests portsout.WithdrawRequestRepository,
	wallets portsout.WalletRepository,
	clock Clock,
) portsin.CreateWithdrawRequestUseCase {
	if clock == nil {
		clock = NewSystemClock()
	}

	return &createWithdrawRequestUseCase{
		requests: requests,
		wallets:  wallets,
		clock:    clock,
	}
}

// The request only reserves intent; no balance moves until an operator
// approves it out of band.
func (u *createWithdrawRequestUseCase) Execute(ctx context.Context, command dto.CreateWithdrawRequestCommand) (dto.WithdrawRequestResource, *apperrors.AppError) {
	if u.requests == nil || u.wallets == nil {
		return dto.WithdrawRequestResource{}, apperrors.NewInternal(
			"withdraw_request_dependencies_missing",
			"withdraw request and wallet repositories are required",
			nil,
		)
	}

	amountMinor, appErr := valueobjects.ParseAmountMinor(command.Amount)
	if appErr != nil || amountMinor <= 0 {
		return dto.WithdrawRequestResource{}, apperrors.NewValidation(
			"invalid_request",
			"Minium withdrawable amount should be greater than 0 USDC",
			map[string]any{"field": "amount"},
		)
	}

	toAddress, appErr := valueobjects.NormalizeAddressForStorage(command.To)
	if appErr != nil {
		return dto.WithdrawRequestResource{}, appErr
	}

	wallet, appErr := u.wallets.GetByUserAndType(ctx, command.UserID, valueobjects.WalletTypeFulfiller)
	if appErr != nil {
		return dto.WithdrawRequestResource{}, appErr
	}
	if amountMinor > wallet.BalanceMinor {
		return dto.WithdrawRequestResource{}, apperrors.NewValidation(
			"insufficient_balance",
			fmt.Sprintf("Maximum withdrawable amount is %s USDC", valueobjects.FormatAmountMinor(wallet.BalanceMinor)),
			map[string]any{"balance": valueobjects.FormatAmountMinor(wallet.BalanceMinor)},
		)
	}

	request, appErr := u.requests.Create(ctx, entities.WithdrawRequest{
		UserID:      command.UserID,
		AmountMinor: amountMinor,
		ToAddress:   toAddress,
		Status:      entities.WithdrawRequestStatusPending,
		CreatedAt:   u.clock.NowUTC(),
	})
	if appErr != nil {
		return dto.WithdrawRequestResource{}, appErr
	}

	return mapWithdrawRequestResource(request), nil
}
