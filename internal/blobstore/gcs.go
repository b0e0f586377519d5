package blobstore

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// GCS uploads streams as objects in a Google Cloud Storage bucket. Used when
// the worker is started with --blob-bucket set.
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCS dials the default GCS client and returns a store writing into
// bucket, with object names under prefix (may be empty).
func NewGCS(ctx context.Context, bucket, prefix string) (*GCS, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("blobstore: new gcs client: %w", err)
	}
	return &GCS{client: client, bucket: bucket, prefix: prefix}, nil
}

// UploadStream writes r to a new object and returns its gs:// resource ID.
func (g *GCS) UploadStream(ctx context.Context, r io.Reader) (string, error) {
	name := uuid.NewString() + ".log"
	if g.prefix != "" {
		name = g.prefix + "/" + name
	}

	obj := g.client.Bucket(g.bucket).Object(name)
	w := obj.NewWriter(ctx)

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("blobstore: write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("blobstore: close object: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", g.bucket, name), nil
}

// Close releases the underlying GCS client.
func (g *GCS) Close() error {
	return g.client.Close()
}
