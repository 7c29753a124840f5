package local

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"

	portsout "ticketpay/internal/application/ports/out"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

// Store writes uploads to a local directory and serves them under the
// configured public base URL. Filenames are randomized; the original
// name only contributes its extension.
type Store struct {
	rootDir string
	baseURL string
}

var _ portsout.FileStore = (*Store)(nil)

func NewStore(rootDir, baseURL string) (*Store, *apperrors.AppError) {
	trimmedRoot := strings.TrimSpace(rootDir)
	if trimmedRoot == "" {
		return nil, apperrors.NewInternal(
			"file_store_misconfigured",
			"upload root directory is required",
			nil,
		)
	}
	if err := os.MkdirAll(trimmedRoot, 0o755); err != nil {
		return nil, apperrors.NewInternal(
			"file_store_misconfigured",
			"failed to create upload root directory",
			map[string]any{"error": err.Error(), "root_dir": trimmedRoot},
		)
	}

	return &Store{
		rootDir: trimmedRoot,
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}, nil
}

func (s *Store) Save(ctx context.Context, filename string, content io.Reader) (string, *apperrors.AppError) {
	if err := ctx.Err(); err != nil {
		return "", apperrors.NewInternal(
			"file_store_save_canceled",
			"upload canceled",
			map[string]any{"error": err.Error()},
		)
	}

	storedName, appErr := randomizedName(filename)
	if appErr != nil {
		return "", appErr
	}

	targetPath := filepath.Join(s.rootDir, storedName)
	target, err := os.OpenFile(targetPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", apperrors.NewInternal(
			"file_store_save_failed",
			"failed to create upload file",
			map[string]any{"error": err.Error()},
		)
	}

	if _, err := io.Copy(target, content); err != nil {
		target.Close()
		os.Remove(targetPath)
		return "", apperrors.NewInternal(
			"file_store_save_failed",
			"failed to write upload file",
			map[string]any{"error": err.Error()},
		)
	}
	if err := target.Close(); err != nil {
		os.Remove(targetPath)
		return "", apperrors.NewInternal(
			"file_store_save_failed",
			"failed to finalize upload file",
			map[string]any{"error": err.Error()},
		)
	}

	return s.baseURL + "/" + storedName, nil
}

func randomizedName(filename string) (string, *apperrors.AppError) {
	buffer := make([]byte, 16)
	if _, err := rand.Read(buffer); err != nil {
		return "", apperrors.NewInternal(
			"file_store_save_failed",
			"failed to generate upload file name",
			map[string]any{"error": err.Error()},
		)
	}

	extension := strings.ToLower(filepath.Ext(filepath.Base(strings.TrimSpace(filename))))
	switch extension {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
	default:
		extension = ""
	}

	return hex.EncodeToString(buffer) + extension, nil
}
