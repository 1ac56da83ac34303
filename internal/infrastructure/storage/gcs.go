package storage

import (
	"context"
	"io"
	"path"

	gcs "cloud.google.com/go/storage"

	"github.com/oksasatya/marketplace-api/internal/application"
	"github.com/oksasatya/marketplace-api/pkg/helpers"
)

const gcsPrefix = "uploads"

// GCSStore uploads into a bucket; an object only exists once its writer closes cleanly.
type GCSStore struct {
	Client *gcs.Client
	Bucket string
}

func NewGCSStore(client *gcs.Client, bucket string) *GCSStore {
	return &GCSStore{Client: client, Bucket: bucket}
}

func (s *GCSStore) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return helpers.UploadObject(ctx, s.Client, s.Bucket, path.Join(gcsPrefix, name), contentType, r)
}

var _ application.FileStore = (*GCSStore)(nil)
