package in

import (
	"context"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type UploadFileUseCase interface {
	Execute(ctx context.Context, command dto.UploadFileCommand) (dto.UploadFileOutput, *apperrors.AppError)
}
