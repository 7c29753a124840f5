package out

import (
	"context"

	apperrors "ticketpay/internal/shared_kernel/errors"
)

type DepositAddressAllocation struct {
	AddressCanonical string
	Address          string
}

// DepositAddressAllocator derives the receive address for a derivation
// index from the configured extended public key. Derivation is pure;
// no private material is involved.
type DepositAddressAllocator interface {
	Allocate(ctx context.Context, derivationIndex int64) (DepositAddressAllocation, *apperrors.AppError)
}
