package out

import (
	"context"

	"ticketpay/internal/domain/entities"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type WithdrawRequestRepository interface {
	Create(ctx context.Context, request entities.WithdrawRequest) (entities.WithdrawRequest, *apperrors.AppError)
	ListByUser(ctx context.Context, userID int64) ([]entities.WithdrawRequest, *apperrors.AppError)
}
