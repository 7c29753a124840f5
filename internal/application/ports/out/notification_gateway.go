package out

import (
	"context"

	apperrors "ticketpay/internal/shared_kernel/errors"
)

type NotificationGateway interface {
	SendText(ctx context.Context, chatID, text string) *apperrors.AppError
	SendPhoto(ctx context.Context, chatID, caption, photoURL string) *apperrors.AppError
	// SendMediaGroup attaches the caption to the first photo.
	SendMediaGroup(ctx context.Context, chatID, caption string, photoURLs []string) *apperrors.AppError
}
