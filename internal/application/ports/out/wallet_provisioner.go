package out

import (
	"context"

	apperrors "ticketpay/internal/shared_kernel/errors"
)

// WalletProvisioner mints a fresh custodial receive address. Private
// key material stays inside the adapter and is never returned.
type WalletProvisioner interface {
	ProvisionEthereumAddress(ctx context.Context) (DepositAddressAllocation, *apperrors.AppError)
}
