package entities

import (
	"time"

	apperrors "ticketpay/internal/shared_kernel/errors"
)

type WithdrawRequestStatus string

const (
	WithdrawRequestStatusPending  WithdrawRequestStatus = "pending"
	WithdrawRequestStatusApproved WithdrawRequestStatus = "approved"
	WithdrawRequestStatusRejected WithdrawRequestStatus = "rejected"
)

func ParseWithdrawRequestStatus(raw string) (WithdrawRequestStatus, *apperrors.AppError) {
	switch raw {
	case string(WithdrawRequestStatusPending):
		return WithdrawRequestStatusPending, nil
	case string(WithdrawRequestStatusApproved):
		return WithdrawRequestStatusApproved, nil
	case string(WithdrawRequestStatusRejected):
		return WithdrawRequestStatusRejected, nil
	default:
		return "", apperrors.NewInternal(
			"withdraw_request_status_invalid",
			"withdraw request status is invalid",
			map[string]any{"status": raw},
		)
	}
}

// WithdrawRequest is a fulfiller payout that settles asynchronously
// after operator review, unlike direct client-trust withdrawals.
type WithdrawRequest struct {
	ID          int64
	UserID      int64
	AmountMinor int64
	ToAddress   string
	Status      WithdrawRequestStatus
	CreatedAt   time.Time
	ReviewedAt  *time.Time
}
