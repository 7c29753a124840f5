package use_cases

import (
	"context"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	"ticketpay/internal/domain/entities"
	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type createWalletUseCase struct {
	wallets portsout.WalletRepository
	clock   Clock
}

func NewCreateWalletUseCase(wallets portsout.WalletRepository, clock Clock) portsin.CreateWalletUseCase {
	if clock == nil {
		clock = NewSystemClock()
	}

	return &createWalletUseCase{wallets: wallets, clock: clock}
}

func (u *createWalletUseCase) Execute(ctx context.Context, command dto.CreateWalletCommand) (dto.WalletResource, *apperrors.AppError) {
	if u.wallets == nil {
		return dto.WalletResource{}, apperrors.NewInternal(
			"wallet_repository_missing",
			"wallet repository is required",
			nil,
		)
	}

	walletType, appErr := valueobjects.ParseWalletType(command.Type)
	if appErr != nil {
		return dto.WalletResource{}, appErr
	}
	tokenType, appErr := valueobjects.ParseTokenType(command.TokenType)
	if appErr != nil {
		return dto.WalletResource{}, appErr
	}

	address := ""
	if command.Address != "" {
		canonical, appErr := valueobjects.NormalizeAddressForStorage(command.Address)
		if appErr != nil {
			return dto.WalletResource{}, appErr
		}
		address = canonical
	}

	now := u.clock.NowUTC()
	wallet, appErr := u.wallets.Create(ctx, entities.Wallet{
		UserID:    command.UserID,
		Type:      walletType,
		TokenType: tokenType,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if appErr != nil {
		return dto.WalletResource{}, appErr
	}

	return mapWalletResource(wallet), nil
}
