// Package blobstore abstracts the single operation the worker needs from the
// external blob store: turning a readable stream into a durable resource ID.
// The worker only ever writes (crash logs); it never reads its own uploads
// back, so the interface stays intentionally narrow.
package blobstore

import (
	"context"
	"io"
)

// Store uploads a stream and returns an opaque resource ID the master's
// domain objects can later resolve back to the bytes.
type Store interface {
	UploadStream(ctx context.Context, r io.Reader) (resourceID string, err error)
}
