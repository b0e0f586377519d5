// Package worker implements the worker side of the worker/master protocol:
// identity, the heartbeat loop, the job-acquisition/runner loop, and the
// supervisor that runs both to completion.
//
// A Worker is driven by two activities sharing one piece of state (see
// types.go): the heartbeat loop runs on the caller's goroutine, the runner
// loop runs on a background goroutine started by Worker.Serve. Kill is
// the only way to interrupt a job already in Job.Run; stopping the worker
// does not.
package worker

import (
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/plynxio/worker/internal/blobstore"
	"github.com/plynxio/worker/internal/metrics"
	"github.com/plynxio/worker/pkg/types"
)

// NumberOfAttempts is how many consecutive heartbeat failures the worker
// tolerates before giving up and shutting down.
const NumberOfAttempts = 10

// Config configures a new Worker.
type Config struct {
	// WorkerID is the worker's identity on the wire. Empty generates one.
	WorkerID types.WorkerID
	Host     string
	Port     int

	Store      blobstore.Store
	JobFactory JobFactory
	Logger     *slog.Logger
	Metrics    *metrics.Collector // optional; nil disables metrics recording
}

// Worker runs a single-job-at-a-time state machine against one master,
// reachable at Host:Port.
type Worker struct {
	id       types.WorkerID
	hostPort string

	store      blobstore.Store
	jobFactory JobFactory
	logger     *slog.Logger
	metrics    *metrics.Collector

	state *state

	stopOnce sync.Once
	stopCh   chan struct{}
	fatalErr chan error
}

// New constructs a Worker. It does not start any goroutines; call
// w.Serve to run it.
func New(cfg Config) *Worker {
	id := cfg.WorkerID
	if id == "" {
		id = types.WorkerID(uuid.NewString())
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("worker_id", id)

	w := &Worker{
		id:         id,
		hostPort:   net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port)),
		store:      cfg.Store,
		jobFactory: cfg.JobFactory,
		logger:     logger,
		metrics:    cfg.Metrics,
		state:      newState(),
		stopCh:     make(chan struct{}),
		fatalErr:   make(chan error, 1),
	}
	w.recordRunStatus(types.StatusIdle)
	return w
}

// ID returns the worker's identity.
func (w *Worker) ID() types.WorkerID { return w.id }

// Stop requests a graceful shutdown. It does not interrupt a job currently
// in Job.Run. Only a KILL message from the master does that.
//
// Stop may be called concurrently from the ctx.Done() watcher, a fatal
// error, and the heartbeat loop's own retry-exhaustion path; stopOnce keeps
// only the first call closing stopCh.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
	})
}

// stopped reports whether Stop has been called.
func (w *Worker) stopped() bool {
	select {
	case <-w.stopCh:
		return true
	default:
		return false
	}
}

// fatal records an unrecoverable error and stops the worker. Only the first
// fatal error is kept; later ones are dropped since the worker is already
// on its way down.
func (w *Worker) fatal(err error) {
	select {
	case w.fatalErr <- err:
	default:
	}
	w.Stop()
}

// recordRunStatus mirrors status onto the run-status gauge, a no-op if
// metrics are disabled.
func (w *Worker) recordRunStatus(status types.RunStatus) {
	if w.metrics == nil {
		return
	}
	var v int
	switch status {
	case types.StatusRunning:
		v = metrics.RunStatusRunning
	case types.StatusSuccess:
		v = metrics.RunStatusSuccess
	case types.StatusFailed:
		v = metrics.RunStatusFailed
	default:
		v = metrics.RunStatusIdle
	}
	w.metrics.SetRunStatus(v)
}

// sleep blocks for d or until Stop is called, whichever comes first. This
// is the interruptible sleep both loops use between iterations.
func (w *Worker) sleep(d time.Duration) {
	select {
	case <-time.After(d):
	case <-w.stopCh:
	}
}
