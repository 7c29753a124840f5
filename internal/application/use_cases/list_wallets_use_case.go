package use_cases

import (
	"context"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type listWalletsUseCase struct {
	wallets portsout.WalletRepository
}

func NewListWalletsUseCase(wallets portsout.WalletRepository) portsin.ListWalletsUseCase {
	return &listWalletsUseCase{wallets: wallets}
}

func (u *listWalletsUseCase) Execute(ctx context.Context, query dto.ListWalletsQuery) ([]dto.WalletResource, *apperrors.AppError) {
	if u.wallets == nil {
		return nil, apperrors.NewInternal(
			"wallet_repository_missing",
			"wallet repository is required",
			nil,
		)
	}

	wallets, appErr := u.wallets.ListByUser(ctx, query.UserID)
	if appErr != nil {
		return nil, appErr
	}

	resources := make([]dto.WalletResource, 0, len(wallets))
	for _, wallet := range wallets {
		resources = append(resources, mapWalletResource(wallet))
	}

	return resources, nil
}
