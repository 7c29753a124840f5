package use_cases

import (
	"context"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type connectWalletUseCase struct {
	wallets portsout.WalletRepository
	clock   Clock
}

func NewConnectWalletUseCase(wallets portsout.WalletRepository, clock Clock) portsin.ConnectWalletUseCase {
	if clock == nil {
		clock = NewSystemClock()
	}

	return &connectWalletUseCase{wallets: wallets, clock: clock}
}

// Connect binds an externally held address to the user's wallet record.
// Reconnecting with a different address overwrites the binding.
func (u *connectWalletUseCase) Execute(ctx context.Context, command dto.ConnectWalletCommand) (dto.WalletResource, *apperrors.AppError) {
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
	if _, appErr := valueobjects.ParseTokenType(command.TokenType); appErr != nil {
		return dto.WalletResource{}, appErr
	}

	canonical, appErr := valueobjects.NormalizeAddressForStorage(command.Address)
	if appErr != nil {
		return dto.WalletResource{}, appErr
	}

	wallet, appErr := u.wallets.GetByUserAndType(ctx, command.UserID, walletType)
	if appErr != nil {
		return dto.WalletResource{}, appErr
	}

	wallet, appErr = u.wallets.SetAddress(ctx, wallet.ID, canonical, u.clock.NowUTC())
	if appErr != nil {
		return dto.WalletResource{}, appErr
	}

	return mapWalletResource(wallet), nil
}
