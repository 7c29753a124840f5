package use_cases

import (
	"context"
	"strings"

	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type uploadFileUseCase struct {
	files portsout.FileStore
}

func NewUploadFileUseCase(files portsout.FileStore) portsin.UploadFileUseCase {
	return &uploadFileUseCase{files: files}
}

func (u *uploadFileUseCase) Execute(ctx context.Context, command dto.UploadFileCommand) (dto.UploadFileOutput, *apperrors.AppError) {
	if u.files == nil {
		return dto.UploadFileOutput{}, apperrors.NewInternal(
			"file_store_missing",
			"file store is required",
			nil,
		)
	}

	if strings.TrimSpace(command.Filename) == "" {
		return dto.UploadFileOutput{}, apperrors.NewValidation(
			"upload_filename_required",
			"uploaded file must carry a filename",
			nil,
		)
	}
	if command.Content == nil {
		return dto.UploadFileOutput{}, apperrors.NewValidation(
			"upload_content_required",
			"uploaded file must carry content",
			nil,
		)
	}

	url, appErr := u.files.Save(ctx, command.Filename, command.Content)
	if appErr != nil {
		return dto.UploadFileOutput{}, appErr
	}

	return dto.UploadFileOutput{URL: url}, nil
}
