package storage

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Store persists an uploaded binary and returns the path or URL under which
// it can be retrieved.
type Store interface {
	Save(ctx context.Context, r io.Reader, contentType, folder string) (string, error)
}

// Files is the process-wide file store, selected by STORAGE_BACKEND.
var Files Store

// Init picks the storage backend: "gcs" for Google Cloud Storage, anything
// else falls back to local disk under UPLOAD_DIR.
func Init() {
	backend := strings.ToLower(os.Getenv("STORAGE_BACKEND"))
	switch backend {
	case "gcs":
		Files = NewGCSStore()
		logrus.Info("File storage: Google Cloud Storage")
	default:
		dir := os.Getenv("UPLOAD_DIR")
		if dir == "" {
			dir = "uploads"
		}
		Files = NewLocalStore(dir)
		logrus.WithField("dir", dir).Info("File storage: local disk")
	}
}

// Close releases backend resources, if any.
func Close() {
	if c, ok := Files.(io.Closer); ok {
		c.Close()
	}
}

// extensionFor maps an upload's content type to a file extension.
// Unknown types default to jpg, matching how uploads were handled before.
func extensionFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/png":
		return "png"
	case "image/jpeg", "image/jpg":
		return "jpeg"
	case "image/gif":
		return "gif"
	case "application/pdf":
		return "pdf"
	default:
		return "jpg"
	}
}
