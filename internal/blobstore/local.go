package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Local writes uploaded streams to files under a directory on disk. It is
// the worker's default blob store: no external dependency is required to
// run a worker standalone against the reference master.
type Local struct {
	dir string
}

// NewLocal returns a Local store rooted at dir. The directory is created on
// first upload if it does not exist.
func NewLocal(dir string) *Local {
	return &Local{dir: dir}
}

// UploadStream copies r into a new file under the store's directory and
// returns a file:// resource ID pointing at it.
func (l *Local) UploadStream(ctx context.Context, r io.Reader) (string, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", fmt.Errorf("blobstore: create dir: %w", err)
	}

	id := uuid.NewString()
	path := filepath.Join(l.dir, id+".log")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("blobstore: create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("blobstore: write file: %w", err)
	}

	return "file://" + path, nil
}
