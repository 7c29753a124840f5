package entities

import (
	"time"

	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "deposit"
	TransactionTypeWithdraw TransactionType = "withdraw"
	TransactionTypeCredit   TransactionType = "credit"
	TransactionTypeDebit    TransactionType = "debit"
)

func ParseTransactionType(raw string) (TransactionType, *apperrors.AppError) {
	switch raw {
	case string(TransactionTypeDeposit):
		return TransactionTypeDeposit, nil
	case string(TransactionTypeWithdraw):
		return TransactionTypeWithdraw, nil
	case string(TransactionTypeCredit):
		return TransactionTypeCredit, nil
	case string(TransactionTypeDebit):
		return TransactionTypeDebit, nil
	default:
		return "", apperrors.NewValidation(
			"invalid_request",
			"transaction type is invalid",
			map[string]any{"transaction_type": raw},
		)
	}
}

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

func ParseTransactionStatus(raw string) (TransactionStatus, *apperrors.AppError) {
	switch raw {
	case string(TransactionStatusPending):
		return TransactionStatusPending, nil
	case string(TransactionStatusCompleted):
		return TransactionStatusCompleted, nil
	case string(TransactionStatusFailed):
		return TransactionStatusFailed, nil
	default:
		return "", apperrors.NewValidation(
			"invalid_request",
			"transaction status is invalid",
			map[string]any{"status": raw},
		)
	}
}

type CryptoTransaction struct {
	ID              int64
	TransactionType TransactionType
	Status          TransactionStatus
	AmountMinor     int64
	TokenType       valueobjects.TokenType
	TransactionHash *string
	AddressFrom     *string
	AddressTo       *string
	UserIDFrom      *int64
	UserIDTo        *int64
	Description     string
	ReferenceID     *string
	CreatedAt       time.Time
}

// PendingGroupKey identifies the counterparty tuple used to fold
// pending rows together. Ok is false when any identity field is
// missing; such rows are skipped, never merged into a zero-value group.
type PendingGroupKey struct {
	UserIDFrom  int64
	UserIDTo    int64
	AddressFrom string
	AddressTo   string
	TokenType   valueobjects.TokenType
}

func (t CryptoTransaction) GroupKey() (PendingGroupKey, bool) {
	if t.UserIDFrom == nil || t.UserIDTo == nil || t.AddressFrom == nil || t.AddressTo == nil {
		return PendingGroupKey{}, false
	}
	if *t.AddressFrom == "" || *t.AddressTo == "" {
		return PendingGroupKey{}, false
	}

	return PendingGroupKey{
		UserIDFrom:  *t.UserIDFrom,
		UserIDTo:    *t.UserIDTo,
		AddressFrom: *t.AddressFrom,
		AddressTo:   *t.AddressTo,
		TokenType:   t.TokenType,
	}, true
}
