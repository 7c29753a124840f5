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

type resolveDepositAddressUseCase struct {
	intents   portsout.DepositIntentRepository
	allocator portsout.DepositAddressAllocator
	clock     Clock
}

func NewResolveDepositAddressUseCase(
	intents portsout.DepositIntentRepository,
	allocator portsout.DepositAddressAllocator,
	clock Clock,
) portsin.ResolveDepositAddressUseCase {
	if clock == nil {
		clock = NewSystemClock()
	}

	return &resolveDepositAddressUseCase{
		intents:   intents,
		allocator: allocator,
		clock:     clock,
	}
}

// Each resolution burns a fresh derivation index, so concurrent
// depositors never share a receive address.
func (u *resolveDepositAddressUseCase) Execute(ctx context.Context, query dto.ResolveDepositAddressQuery) (dto.DepositAddressResource, *apperrors.AppError) {
	if u.intents == nil || u.allocator == nil {
		return dto.DepositAddressResource{}, apperrors.NewInternal(
			"resolve_deposit_address_dependencies_missing",
			"deposit intent repository and address allocator are required",
			nil,
		)
	}

	amountMinor, appErr := valueobjects.ParseAmountMinor(query.Amount)
	if appErr != nil {
		return dto.DepositAddressResource{}, appErr
	}
	if amountMinor <= 0 {
		return dto.DepositAddressResource{}, apperrors.NewValidation(
			"invalid_request",
			"amount must be greater than 0",
			map[string]any{"field": "amount"},
		)
	}

	addressFrom, appErr := valueobjects.NormalizeAddressForStorage(query.AddressFrom)
	if appErr != nil {
		return dto.DepositAddressResource{}, appErr
	}

	index, appErr := u.intents.NextDerivationIndex(ctx)
	if appErr != nil {
		return dto.DepositAddressResource{}, appErr
	}

	allocation, appErr := u.allocator.Allocate(ctx, index)
	if appErr != nil {
		return dto.DepositAddressResource{}, appErr
	}

	if _, appErr := u.intents.Create(ctx, entities.DepositIntent{
		AddressFrom:     addressFrom,
		DepositAddress:  allocation.AddressCanonical,
		DerivationIndex: index,
		AmountMinor:     amountMinor,
		CreatedAt:       u.clock.NowUTC(),
	}); appErr != nil {
		return dto.DepositAddressResource{}, appErr
	}

	return dto.DepositAddressResource{
		Address:         allocation.Address,
		DerivationIndex: index,
		Amount:          valueobjects.FormatAmountMinor(amountMinor),
	}, nil
}
