package out

import (
	"context"
	"time"

	"ticketpay/internal/domain/entities"
	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

// Status-changing methods are guarded on the expected current status;
// a stale caller gets a conflict, never a silent overwrite.
type TicketRepository interface {
	Create(ctx context.Context, ticket entities.Ticket) (entities.Ticket, *apperrors.AppError)
	GetByID(ctx context.Context, id int64) (entities.Ticket, *apperrors.AppError)
	List(ctx context.Context, status string, page, limit int) ([]entities.Ticket, int64, *apperrors.AppError)
	ListByStatuses(ctx context.Context, statuses []string) ([]entities.Ticket, *apperrors.AppError)
	TransitionStatus(
		ctx context.Context,
		id int64,
		from, to valueobjects.TicketStatus,
	) (entities.Ticket, *apperrors.AppError)
	Claim(ctx context.Context, id, fulfillerID int64) (entities.Ticket, *apperrors.AppError)
	Complete(
		ctx context.Context,
		id int64,
		imageURLs []string,
		completedAt time.Time,
	) (entities.Ticket, *apperrors.AppError)
	Report(
		ctx context.Context,
		id int64,
		reason valueobjects.ReportReason,
		screenshotURL string,
	) (entities.Ticket, *apperrors.AppError)
}
