package services

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	objectKeyTimeLayout = "20060102150405"
)

// StorageService uploads raw resume bytes and returns a URL the file can be fetched from.
type StorageService interface {
	Upload(ctx context.Context, key string, data []byte) (string, error)
}

// ObjectKey builds the storage key {UTC YYYYMMDDHHMMSS}_{fileName}.
func ObjectKey(now time.Time, fileName string) string {
	return fmt.Sprintf("%s_%s", now.UTC().Format(objectKeyTimeLayout), fileName)
}

// ContentTypeFor infers the upload content type from the file suffix. Only PDF and DOCX exist here.
func ContentTypeFor(fileName string) string {
	if strings.HasSuffix(fileName, ".pdf") {
		return mimePDF
	}
	return mimeDOCX
}

type localStorageService struct {
	uploadPath string
	baseURL    string
}

// NewLocalStorageService stores uploads on disk under uploadPath. Files are
// expected to be served at {baseURL}/uploads/.
func NewLocalStorageService(uploadPath, baseURL string) (StorageService, error) {
	s := &localStorageService{
		uploadPath: uploadPath,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
	if err := s.ensureUploadDir(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *localStorageService) ensureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

func (s *localStorageService) Upload(ctx context.Context, key string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := filepath.Base(key)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}

	filePath := filepath.Join(s.uploadPath, name)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return fmt.Sprintf("%s/uploads/%s", s.baseURL, url.PathEscape(name)), nil
}
