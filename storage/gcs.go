package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// GCSStore uploads binaries to a Google Cloud Storage bucket and returns
// their public URLs.
type GCSStore struct {
	client *storage.Client
	bucket string
}

func NewGCSStore() *GCSStore {
	ctx := context.Background()

	var opts []option.ClientOption
	if creds := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create Google Cloud Storage client")
	}

	bucket := os.Getenv("GCS_BUCKET")
	if bucket == "" {
		logrus.Fatal("GCS_BUCKET not set in .env")
	}
	if _, err := client.Bucket(bucket).Attrs(ctx); err != nil {
		logrus.WithError(err).Fatalf("Cannot access bucket %s", bucket)
	}

	return &GCSStore{client: client, bucket: bucket}
}

func (s *GCSStore) Save(ctx context.Context, r io.Reader, contentType, folder string) (string, error) {
	// UUID + nano timestamp keeps object names unique.
	objectName := fmt.Sprintf("%s/%s_%d.%s", folder, uuid.NewString(), time.Now().UnixNano(), extensionFor(contentType))

	writer := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	if contentType == "" {
		contentType = "image/jpeg"
	}
	writer.ContentType = contentType

	if _, err := io.Copy(writer, r); err != nil {
		writer.Close()
		return "", fmt.Errorf("copy to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close GCS writer: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objectName), nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
