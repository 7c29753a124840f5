package use_cases

import (
	"context"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type getWalletUseCase struct {
	wallets portsout.WalletRepository
}

func NewGetWalletUseCase(wallets portsout.WalletRepository) portsin.GetWalletUseCase {
	return &getWalletUseCase{wallets: wallets}
}

func (u *getWalletUseCase) Execute(ctx context.Context, query dto.GetWalletQuery) (dto.WalletResource, *apperrors.AppError) {
	if u.wallets == nil {
		return dto.WalletResource{}, apperrors.NewInternal(
			"wallet_repository_missing",
			"wallet repository is required",
			nil,
		)
	}

	walletType, appErr := valueobjects.ParseWalletType(query.Type)
	if appErr != nil {
		return dto.WalletResource{}, appErr
	}

	wallet, appErr := u.wallets.GetByUserAndType(ctx, query.UserID, walletType)
	if appErr != nil {
		return dto.WalletResource{}, appErr
	}

	return mapWalletResource(wallet), nil
}
