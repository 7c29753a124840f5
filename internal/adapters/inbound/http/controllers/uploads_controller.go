package controllers

import (
	"log"
	"net/http"

	"ticketpay/internal/adapters/inbound/http/middleware"
	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

// maxUploadBytes caps a single multipart upload at 8 MiB.
const maxUploadBytes = 8 << 20

type UploadsController struct {
	uploadUseCase portsin.UploadFileUseCase
	logger        *log.Logger
}

func NewUploadsController(uploadUseCase portsin.UploadFileUseCase, logger *log.Logger) *UploadsController {
	return &UploadsController{
		uploadUseCase: uploadUseCase,
		logger:        logger,
	}
}

// UploadOne accepts a single multipart file under the "file" field.
func (c *UploadsController) UploadOne(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.PrincipalFromContext(r.Context()); !ok {
		writeAppError(w, apperrors.NewUnauthorized("token_missing", "bearer token is required", nil))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeAppError(w, apperrors.NewValidation(
			"invalid_request",
			"request body must be multipart form data",
			map[string]any{"error": err.Error()},
		))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeAppError(w, apperrors.NewValidation(
			"upload_file_required",
			"multipart field 'file' is required",
			nil,
		))
		return
	}
	defer file.Close()

	output, appErr := c.uploadUseCase.Execute(r.Context(), dto.UploadFileCommand{
		Filename: header.Filename,
		Content:  file,
	})
	if appErr != nil {
		c.logRequestError(r, "/v1/upload", appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusCreated, output)
}

// UploadMany accepts several multipart files under the "files" field and
// returns their URLs in submission order.
func (c *UploadsController) UploadMany(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.PrincipalFromContext(r.Context()); !ok {
		writeAppError(w, apperrors.NewUnauthorized("token_missing", "bearer token is required", nil))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeAppError(w, apperrors.NewValidation(
			"invalid_request",
			"request body must be multipart form data",
			map[string]any{"error": err.Error()},
		))
		return
	}

	if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
		writeAppError(w, apperrors.NewValidation(
			"upload_files_required",
			"multipart field 'files' is required",
			nil,
		))
		return
	}

	urls := make([]string, 0, len(r.MultipartForm.File["files"]))
	for _, header := range r.MultipartForm.File["files"] {
		file, err := header.Open()
		if err != nil {
			writeAppError(w, apperrors.NewValidation(
				"upload_file_unreadable",
				"uploaded file could not be read",
				map[string]any{"filename": header.Filename},
			))
			return
		}

		output, appErr := c.uploadUseCase.Execute(r.Context(), dto.UploadFileCommand{
			Filename: header.Filename,
			Content:  file,
		})
		file.Close()
		if appErr != nil {
			c.logRequestError(r, "/v1/uploads", appErr)
			writeAppError(w, appErr)
			return
		}

		urls = append(urls, output.URL)
	}

	writeJSON(w, http.StatusCreated, map[string]any{"urls": urls})
}

func (c *UploadsController) logRequestError(r *http.Request, path string, appErr *apperrors.AppError) {
	c.logger.Printf("request error path=%s method=%s code=%s message=%s", path, r.Method, appErr.Code, appErr.Message)
}
