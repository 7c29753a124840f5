package deterministic

import (
	"context"
	"fmt"

	portsout "ticketpay/internal/application/ports/out"
	valueobjects "ticketpay/internal/domain/value_objects"
	"ticketpay/internal/infrastructure/walletkeys"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

// Allocator derives receive addresses from an account-level xpub.
// Derivation is pure and repeatable; the same index always yields the
// same address.
type Allocator struct {
	key      walletkeys.ExtendedPublicKey
	template string
}

var _ portsout.DepositAddressAllocator = (*Allocator)(nil)

func NewAllocator(rawXpub, derivationPathTemplate string) (*Allocator, *apperrors.AppError) {
	key, _, keyErr := walletkeys.NormalizeEVMKeyset(rawXpub)
	if keyErr != nil {
		return nil, mapKeyError(keyErr)
	}
	if keyErr := walletkeys.ValidateAccountLevelPolicy(key); keyErr != nil {
		return nil, mapKeyError(keyErr)
	}
	if keyErr := walletkeys.ValidateDerivationPathTemplate(derivationPathTemplate); keyErr != nil {
		return nil, mapKeyError(keyErr)
	}

	return &Allocator{
		key:      key,
		template: derivationPathTemplate,
	}, nil
}

func (a *Allocator) Allocate(_ context.Context, derivationIndex int64) (portsout.DepositAddressAllocation, *apperrors.AppError) {
	if derivationIndex < 0 {
		return portsout.DepositAddressAllocation{}, apperrors.NewValidation(
			"derivation_index_invalid",
			"derivation index must be non-negative",
			map[string]any{"derivation_index": derivationIndex},
		)
	}

	address, keyErr := walletkeys.DeriveEVMAddress(a.key, a.template, derivationIndex)
	if keyErr != nil {
		return portsout.DepositAddressAllocation{}, mapKeyError(keyErr)
	}

	canonical, appErr := valueobjects.NormalizeAddressForStorage(address)
	if appErr != nil {
		return portsout.DepositAddressAllocation{}, appErr
	}
	responseAddress, appErr := valueobjects.FormatAddressForResponse(canonical)
	if appErr != nil {
		return portsout.DepositAddressAllocation{}, appErr
	}

	return portsout.DepositAddressAllocation{
		AddressCanonical: canonical,
		Address:          responseAddress,
	}, nil
}

func mapKeyError(keyErr *walletkeys.KeyError) *apperrors.AppError {
	if keyErr == nil {
		return nil
	}

	code := string(keyErr.Code)
	if code == "" {
		code = "address_derivation_failed"
	}
	details := map[string]any{
		"reason": keyErr.Message,
	}
	if keyErr.Cause != nil {
		details["cause"] = keyErr.Cause.Error()
	}

	switch keyErr.Code {
	case walletkeys.CodeUnsupportedTarget:
		return apperrors.NewValidation(code, keyErr.Message, details)
	case walletkeys.CodeInvalidConfiguration,
		walletkeys.CodeInvalidKeyMaterialFormat,
		walletkeys.CodeDerivationFailed:
		return apperrors.NewInternal(code, keyErr.Message, details)
	default:
		return apperrors.NewInternal("address_derivation_failed", fmt.Sprintf("address derivation failed: %s", keyErr.Message), details)
	}
}
