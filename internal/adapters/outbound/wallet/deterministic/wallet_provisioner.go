package deterministic

import (
	"context"

	portsout "ticketpay/internal/application/ports/out"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

// IndexSource hands out derivation indices that are never reused.
type IndexSource interface {
	NextDerivationIndex(ctx context.Context) (int64, *apperrors.AppError)
}

// Provisioner mints custodial receive addresses from the same xpub the
// deposit allocator uses. Only public derivation happens here; signing
// keys live with the external custodian.
type Provisioner struct {
	allocator *Allocator
	indices   IndexSource
}

var _ portsout.WalletProvisioner = (*Provisioner)(nil)

func NewProvisioner(allocator *Allocator, indices IndexSource) *Provisioner {
	return &Provisioner{
		allocator: allocator,
		indices:   indices,
	}
}

func (p *Provisioner) ProvisionEthereumAddress(ctx context.Context) (portsout.DepositAddressAllocation, *apperrors.AppError) {
	if p.allocator == nil || p.indices == nil {
		return portsout.DepositAddressAllocation{}, apperrors.NewInternal(
			"wallet_provisioner_misconfigured",
			"wallet provisioner dependencies are missing",
			nil,
		)
	}

	index, appErr := p.indices.NextDerivationIndex(ctx)
	if appErr != nil {
		return portsout.DepositAddressAllocation{}, appErr
	}

	return p.allocator.Allocate(ctx, index)
}
