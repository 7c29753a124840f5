package identity

import (
	portsout "ticketpay/internal/application/ports/out"
	apperrors "ticketpay/internal/shared_kernel/errors"

	"golang.org/x/crypto/bcrypt"
)

type BcryptHasher struct {
	cost int
}

var _ portsout.PasswordHasher = (*BcryptHasher)(nil)

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, *apperrors.AppError) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", apperrors.NewInternal(
			"password_hash_failed",
			"failed to hash password",
			map[string]any{"error": err.Error()},
		)
	}

	return string(hashed), nil
}

func (h *BcryptHasher) Compare(passwordHash, password string) *apperrors.AppError {
	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
		return apperrors.NewUnauthorized(
			"invalid_credentials",
			"invalid username or password",
			nil,
		)
	}

	return nil
}
