package out

import (
	"context"

	"ticketpay/internal/domain/entities"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type SettingsRepository interface {
	Get(ctx context.Context, userID int64) (entities.Setting, *apperrors.AppError)
	Upsert(ctx context.Context, setting entities.Setting) (entities.Setting, *apperrors.AppError)
}
