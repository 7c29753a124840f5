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

type createEthereumWalletUseCase struct {
	wallets     portsout.WalletRepository
	provisioner portsout.WalletProvisioner
	clock       Clock
}

func NewCreateEthereumWalletUseCase(
	wallets portsout.WalletRepository,
	provisioner portsout.WalletProvisioner,
	clock Clock,
) portsin.CreateEthereumWalletUseCase {
	if clock == nil {
		clock = NewSystemClock()
	}

	return &createEthereumWalletUseCase{
		wallets:     wallets,
		provisioner: provisioner,
		clock:       clock,
	}
}

func (u *createEthereumWalletUseCase) Execute(ctx context.Context, command dto.CreateEthereumWalletCommand) (dto.CreateEthereumWalletOutput, *apperrors.AppError) {
	if u.wallets == nil || u.provisioner == nil {
		return dto.CreateEthereumWalletOutput{}, apperrors.NewInternal(
			"create_ethereum_wallet_dependencies_missing",
			"wallet repository and provisioner are required",
			nil,
		)
	}

	allocation, appErr := u.provisioner.ProvisionEthereumAddress(ctx)
	if appErr != nil {
		return dto.CreateEthereumWalletOutput{}, appErr
	}

	now := u.clock.NowUTC()
	wallet, appErr := u.wallets.Create(ctx, entities.Wallet{
		UserID:    command.UserID,
		Type:      valueobjects.WalletTypeETH,
		TokenType: valueobjects.TokenTypeETH,
		Address:   allocation.AddressCanonical,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if appErr != nil {
		return dto.CreateEthereumWalletOutput{}, appErr
	}

	return dto.CreateEthereumWalletOutput{
		Wallet:  mapWalletResource(wallet),
		Address: allocation.Address,
	}, nil
}
