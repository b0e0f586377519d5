package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/plynxio/worker/internal/blobstore"
	"github.com/plynxio/worker/internal/job"
	"github.com/plynxio/worker/internal/logging"
	"github.com/plynxio/worker/internal/metrics"
	"github.com/plynxio/worker/internal/worker"
	"github.com/plynxio/worker/pkg/types"
)

// RunWorker builds and runs a Worker until it exits gracefully or hits an
// unrecoverable error. It owns process-level concerns (logging setup,
// signal handling, the metrics HTTP server) that do not belong in
// internal/worker itself.
func RunWorker(ctx context.Context, opts WorkerOptions) error {
	logger := logging.FromVerbosity(opts.Verbose)
	slog.SetDefault(logger)

	store, err := buildStore(ctx, opts)
	if err != nil {
		return err
	}

	var collector *metrics.Collector
	if opts.MetricsPort != 0 {
		collector = metrics.NewCollector()
		go func() {
			if err := metrics.StartServer(opts.MetricsPort); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	w := worker.New(worker.Config{
		WorkerID:   types.WorkerID(opts.WorkerID),
		Host:       opts.Host,
		Port:       opts.Port,
		Store:      store,
		JobFactory: defaultJobFactory,
		Logger:     logger,
		Metrics:    collector,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("worker starting", "worker_id", w.ID(), "master", fmt.Sprintf("%s:%d", opts.Host, opts.Port))
	return w.Serve(ctx)
}

func buildStore(ctx context.Context, opts WorkerOptions) (blobstore.Store, error) {
	if opts.BlobBucket == "" {
		return blobstore.NewLocal(opts.LogDir), nil
	}
	return blobstore.NewGCS(ctx, opts.BlobBucket, "")
}

// defaultJobFactory materializes a job.Job from the envelope the master
// sent back for GET_JOB. Kind selects the implementation: "demo" (or an
// empty kind) runs the randomized simulation job, "shell" runs an OS command
// named by the payload's "command"/"args" fields. Anything else is an error: this
// worker has no graph/node domain object to fall back to, since that
// object is explicitly the master's concern, not this repository's.
func defaultJobFactory(env *types.JobEnvelope) (job.Job, error) {
	switch env.Kind {
	case "demo", "":
		return job.NewDemo(env.NodeID, 500_000_000), nil // 500ms max simulated work
	case "shell":
		command, _ := env.Payload["command"].(string)
		if command == "" {
			return nil, fmt.Errorf("cli: shell job %s missing payload.command", env.NodeID)
		}
		var args []string
		if raw, ok := env.Payload["args"].([]interface{}); ok {
			for _, a := range raw {
				if s, ok := a.(string); ok {
					args = append(args, s)
				}
			}
		}
		return job.NewShell(env.NodeID, command, args...), nil
	default:
		return nil, fmt.Errorf("cli: unknown job kind %q for node %s", env.Kind, env.NodeID)
	}
}
