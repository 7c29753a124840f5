package entities

import (
	"time"

	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type Wallet struct {
	ID           int64
	UserID       int64
	Type         valueobjects.WalletType
	TokenType    valueobjects.TokenType
	BalanceMinor int64
	Address      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (w Wallet) CanDebit(amountMinor int64) bool {
	return amountMinor > 0 && amountMinor <= w.BalanceMinor
}

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
}

type UserRole string

const (
	UserRoleClient    UserRole = "client"
	UserRoleFulfiller UserRole = "fulfiller"
	UserRoleAdmin     UserRole = "admin"
)

func ParseUserRole(raw string) (UserRole, *apperrors.AppError) {
	switch raw {
	case string(UserRoleClient):
		return UserRoleClient, nil
	case string(UserRoleFulfiller):
		return UserRoleFulfiller, nil
	case string(UserRoleAdmin):
		return UserRoleAdmin, nil
	default:
		return "", apperrors.NewValidation(
			"invalid_request",
			"user role is invalid",
			map[string]any{"role": raw},
		)
	}
}
