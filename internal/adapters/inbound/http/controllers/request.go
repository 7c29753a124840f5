package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	apperrors "ticketpay/internal/shared_kernel/errors"
)

// decodeJSONBody decodes a single JSON object into target and rejects
// unknown fields and trailing payloads.
func decodeJSONBody(body io.Reader, target any) *apperrors.AppError {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	decoder.UseNumber()

	if err := decoder.Decode(target); err != nil {
		return apperrors.NewValidation(
			"invalid_request",
			"request body must be valid JSON",
			map[string]any{"error": err.Error()},
		)
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return apperrors.NewValidation(
			"invalid_request",
			"request body must contain a single JSON object",
			nil,
		)
	}

	return nil
}

func pathID(r *http.Request, name string) (int64, *apperrors.AppError) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidation(
			"invalid_request",
			"path id must be a positive integer",
			map[string]any{"field": name, "value": raw},
		)
	}

	return id, nil
}

func queryInt(r *http.Request, name string, fallback int) (int, *apperrors.AppError) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidation(
			"invalid_request",
			"query parameter must be an integer",
			map[string]any{"field": name, "value": raw},
		)
	}

	return value, nil
}
