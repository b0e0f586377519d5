package worker

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/plynxio/worker/internal/blobstore"
	"github.com/plynxio/worker/internal/job"
)

// uploadTimeout bounds the crash-log upload so a stuck blob store can't hang
// the runner loop forever on a job that already failed.
const uploadTimeout = 10 * time.Second

// captureCrash buffers runErr's text as the job's "worker" log and uploads
// it through store, assigning the resulting resource ID to the job's log
// sink. Failure to do so is itself fatal: there is nowhere else for the
// failure reason to go, and it is reported to the caller so it can shut the
// worker down, mirroring the original's logging.critical + stop().
func captureCrash(ctx context.Context, j job.Job, store blobstore.Store, runErr error, logger *slog.Logger) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "job %s failed: %v\n", j.NodeID(), runErr)

	uploadCtx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	resourceID, err := store.UploadStream(uploadCtx, &buf)
	if err != nil {
		logger.Error("log capture failed", "node_id", j.NodeID(), "error", err)
		return fmt.Errorf("worker: log capture: %w", err)
	}

	j.LogByName("worker").ResourceID = resourceID
	return nil
}
