package out

import (
	"context"
	"time"

	"ticketpay/internal/domain/entities"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type NotificationOutboxRepository interface {
	Enqueue(ctx context.Context, notification entities.Notification) (entities.Notification, *apperrors.AppError)
	ClaimPendingForDispatch(
		ctx context.Context,
		now time.Time,
		limit int,
		leaseOwner string,
		leaseUntil time.Time,
	) ([]entities.Notification, *apperrors.AppError)
	MarkSent(
		ctx context.Context,
		id int64,
		leaseOwner string,
		sentAt time.Time,
	) (bool, *apperrors.AppError)
	MarkRetry(
		ctx context.Context,
		id int64,
		leaseOwner string,
		attempts int,
		nextAttemptAt time.Time,
		lastError string,
		updatedAt time.Time,
	) (bool, *apperrors.AppError)
	MarkFailed(
		ctx context.Context,
		id int64,
		leaseOwner string,
		attempts int,
		lastError string,
		updatedAt time.Time,
	) (bool, *apperrors.AppError)
}
