package fulfiller

import (
	"sync"

	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

// Balance tracks the session's pending wallet balance in minor units.
// Optimistic adjustments land here immediately; server responses that
// carry a balance overwrite it verbatim.
type Balance struct {
	mu    sync.Mutex
	minor int64
}

func NewBalance() *Balance {
	return &Balance{}
}

func (b *Balance) Minor() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.minor
}

func (b *Balance) Amount() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return valueobjects.FormatAmountMinor(b.minor)
}

func (b *Balance) SetMinor(minor int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.minor = minor
}

func (b *Balance) SetAmount(amount string) *apperrors.AppError {
	minor, appErr := valueobjects.ParseAmountMinor(amount)
	if appErr != nil {
		return appErr
	}

	b.SetMinor(minor)
	return nil
}

func (b *Balance) Add(deltaMinor int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.minor += deltaMinor
}
