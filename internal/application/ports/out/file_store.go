package out

import (
	"context"
	"io"

	apperrors "ticketpay/internal/shared_kernel/errors"
)

// FileStore persists an uploaded file and returns its public URL.
type FileStore interface {
	Save(ctx context.Context, filename string, content io.Reader) (string, *apperrors.AppError)
}
