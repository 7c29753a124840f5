package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type ReportTicketUseCase interface {
	Execute(ctx context.Context, command dto.ReportTicketCommand) (dto.ReportTicketOutput, *apperrors.AppError)
}
