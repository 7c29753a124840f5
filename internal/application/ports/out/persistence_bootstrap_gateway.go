package out

import (
	"context"

	apperrors "ticketpay/internal/shared_kernel/errors"
)

type PersistenceBootstrapGateway interface {
	CheckReadiness(ctx context.Context) *apperrors.AppError
	RunMigrations(ctx context.Context) *apperrors.AppError
	ValidateLedgerIntegrity(ctx context.Context) *apperrors.AppError
}
