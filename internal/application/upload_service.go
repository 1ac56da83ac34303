package application

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
)

const (
	defaultUploadExt = "bin"
	maxUploadExtLen  = 10
)

// FileStore persists an uploaded object all-or-nothing and returns its public URL.
type FileStore interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

type UploadService struct {
	Store  FileStore
	Logger *logrus.Logger
}

func NewUploadService(store FileStore, logger *logrus.Logger) *UploadService {
	return &UploadService{Store: store, Logger: logger}
}

// Upload stores r under a fresh random name that keeps the original extension.
func (s *UploadService) Upload(ctx context.Context, id entity.Identity, filename, contentType string, r io.Reader) (string, error) {
	if !id.IsAuthenticated() {
		return "", Unauthenticated("authentication required")
	}
	name := uuid.NewString() + "." + uploadExt(filename)
	url, err := s.Store.Save(ctx, name, contentType, r)
	if err != nil {
		return "", Internal(err)
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", id.UserID()).WithField("object", name).Info("file uploaded")
	}
	return url, nil
}

// uploadExt keeps a short alphanumeric extension; anything else becomes "bin".
func uploadExt(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filepath.Base(filename)), "."))
	if ext == "" || len(ext) > maxUploadExtLen {
		return defaultUploadExt
	}
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return defaultUploadExt
		}
	}
	return ext
}
